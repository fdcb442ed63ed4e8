package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HireDateLayout hireDate 欄位格式
const HireDateLayout = "2006-01-02"

type Employee struct {
	ID         string     `json:"id" bson:"_id"`
	FirstName  string     `json:"firstName" bson:"firstName"`
	LastName   string     `json:"lastName" bson:"lastName"`
	Email      string     `json:"email" bson:"email"`
	Department string     `json:"department" bson:"department"`
	Position   string     `json:"position" bson:"position"`
	Phone      string     `json:"phone" bson:"phone"`
	HireDate   string     `json:"hireDate" bson:"hireDate"`
	Salary     float64    `json:"salary" bson:"salary"`
	IsActive   bool       `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt" bson:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// Clone 深拷貝（DeletedAt 為指標）
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	cp := *e
	if e.DeletedAt != nil {
		t := *e.DeletedAt
		cp.DeletedAt = &t
	}
	return &cp
}

// email 不設 unique：重複 email 由呼叫端自行處理
var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "department", Value: 1}},
		Options: options.Index().SetName("idx_department"),
	},
	{
		Keys:    bson.D{{Key: "isActive", Value: 1}},
		Options: options.Index().SetName("idx_isActive"),
	},
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_email"),
	},
	{
		Keys:    bson.D{{Key: "lastName", Value: 1}},
		Options: options.Index().SetName("idx_lastName"),
	},
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	conf := &Configuration{}
	conf.ApplyDefaults()

	assert.Equal(t, uint32(8080), conf.App.Port)
	assert.Equal(t, "employeehub", conf.App.Name)
	assert.Equal(t, "/api", conf.App.BasePath)
	assert.Equal(t, StoreDriverMongo, conf.Store.Driver)
	assert.Equal(t, "employeedb", conf.Store.DatabaseName)
	assert.Equal(t, "employees", conf.Store.CollectionName)
	assert.Equal(t, "MONGODB-OIDC", conf.Store.AuthMechanism)
	assert.Equal(t, "azure", conf.Store.AuthEnvironment)
	assert.Equal(t, DefaultAzureTokenResource, conf.Store.TokenResource)
	assert.Equal(t, "*/30 * * * * *", conf.Cron.HeartbeatSpec)
	assert.Equal(t, LogFormatJSON, conf.Log.Format)
	require.NoError(t, conf.Validate())
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	conf := &Configuration{
		App:   App{Port: 3000, Name: "hr"},
		Store: Store{Driver: "MEMORY", DatabaseName: "hr", CollectionName: "people"},
	}
	conf.ApplyDefaults()

	assert.Equal(t, uint32(3000), conf.App.Port)
	assert.Equal(t, "hr", conf.App.Name)
	assert.Equal(t, StoreDriverMemory, conf.Store.Driver)
	assert.Equal(t, "hr", conf.Store.DatabaseName)
	assert.Equal(t, "people", conf.Store.CollectionName)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Configuration) {}},
		{name: "unknown driver", mutate: func(c *Configuration) { c.Store.Driver = "cosmos" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Configuration) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Configuration) { c.Log.Format = "xml" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Configuration) { c.App.Port = 70000 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &Configuration{}
			conf.ApplyDefaults()
			tt.mutate(conf)
			err := conf.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

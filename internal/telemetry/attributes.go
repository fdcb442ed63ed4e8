package telemetry

import (
	"reflect"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ApplyTraceAttributes 依 `trace:"key[,omitempty]"` tag 把欄位寫成 span attribute。
// 巢狀 struct 攤平；map[string]T 以 key.mapKey 展開
func (t *Trace) ApplyTraceAttributes(span trace.Span, obj any) {
	if span == nil || obj == nil {
		return
	}
	if attrs := traceAttributes(reflect.ValueOf(obj)); len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func traceAttributes(v reflect.Value) []attribute.KeyValue {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var attrs []attribute.KeyValue
	typ := v.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		key, omitEmpty := parseTraceTag(field.Tag.Get("trace"))
		if key == "" || !field.IsExported() {
			continue
		}
		fv := v.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}

		switch fv.Kind() {
		case reflect.Struct:
			attrs = append(attrs, traceAttributes(fv)...)
		case reflect.Map:
			if fv.Type().Key().Kind() != reflect.String {
				continue
			}
			iter := fv.MapRange()
			for iter.Next() {
				if kv, ok := attributeOf(key+"."+iter.Key().String(), iter.Value()); ok {
					attrs = append(attrs, kv)
				}
			}
		default:
			if kv, ok := attributeOf(key, fv); ok {
				attrs = append(attrs, kv)
			}
		}
	}
	return attrs
}

// 不支援的型別回傳 false
func attributeOf(key string, v reflect.Value) (attribute.KeyValue, bool) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return attribute.KeyValue{}, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return attribute.String(key, v.String()), true
	case reflect.Bool:
		return attribute.Bool(key, v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return attribute.Int64(key, v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return attribute.Int64(key, int64(v.Uint())), true
	case reflect.Float32, reflect.Float64:
		return attribute.Float64(key, v.Float()), true
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() != reflect.String {
			return attribute.KeyValue{}, false
		}
		strs := make([]string, v.Len())
		for j := range strs {
			strs[j] = v.Index(j).String()
		}
		return attribute.StringSlice(key, strs), true
	}
	return attribute.KeyValue{}, false
}

// parseTraceTag 拆出 `trace:"name,omitempty"`
func parseTraceTag(raw string) (name string, omitEmpty bool) {
	if raw == "" || raw == "-" {
		return "", false
	}
	name, opts, _ := strings.Cut(raw, ",")
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

package gormutil

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm/schema"

	"github.com/alex65536/fenboard/internal/fen"
)

// FENSerializer stores boards as their layout strings.
type FENSerializer struct{}

func (FENSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue any) error {
	srcTy := field.FieldType
	noPtrTy := srcTy
	if srcTy.Kind() == reflect.Pointer {
		noPtrTy = srcTy.Elem()
	}
	if noPtrTy != reflect.TypeFor[fen.Board]() {
		return fmt.Errorf("bad field value type: %v", srcTy)
	}
	if dbValue == nil {
		field.ReflectValueOf(ctx, dst).Set(reflect.New(field.FieldType).Elem())
		return nil
	}
	var data string
	switch v := dbValue.(type) {
	case []byte:
		data = string(v)
	case string:
		data = v
	default:
		return fmt.Errorf("bad db value type: %T", dbValue)
	}
	b, err := fen.Parse(data)
	if err != nil {
		return fmt.Errorf("board from layout: %w", err)
	}
	val := field.ReflectValueOf(ctx, dst)
	if srcTy.Kind() == reflect.Pointer {
		val.Set(reflect.ValueOf(&b))
	} else {
		val.Set(reflect.ValueOf(b))
	}
	return nil
}

func (FENSerializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue any) (any, error) {
	switch v := fieldValue.(type) {
	case fen.Board:
		return v.Layout(), nil
	case *fen.Board:
		if v == nil {
			return nil, nil
		}
		return v.Layout(), nil
	default:
		return nil, fmt.Errorf("bad value type %T", fieldValue)
	}
}

func init() {
	schema.RegisterSerializer("fen", FENSerializer{})
}

package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// EntryList holds ordered free-text entries (meal slot contents and
// activities). It decodes both an array of strings and a bare string so
// documents written by earlier schema versions keep loading.
type EntryList []string

// UnmarshalBSONValue accepts null, array and string BSON values.
func (e *EntryList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*e = nil
		return nil
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*e = values
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}

		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			*e = []string{}
			return nil
		}

		*e = []string{trimmed}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into EntryList", t)
	}
}

// MarshalBSONValue always stores the list as an array, keeping new
// writes consistent even when legacy documents used a string value.
func (e EntryList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]string(e))
}

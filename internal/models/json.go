package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// JSON stores a raw JSON document in a jsonb column. Records keep their
// caller-shaped payloads (question arrays, raw question text, parsed résumé
// fields) without a fixed schema.
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		cp := make([]byte, len(v))
		copy(cp, v)
		*j = cp
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("unsupported type for JSON column: %T", value)
	}
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("models.JSON: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (JSON) GormDataType() string {
	return "jsonb"
}

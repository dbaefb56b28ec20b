package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Allowed values for Product.Gender.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Allowed values for Product.Category.
const (
	CategoryMakeup   = "makeup"
	CategorySkincare = "skincare"
	CategoryHaircare = "haircare"
)

// Product represents a catalog item owned by the user who created it.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	OwnerID     string    `json:"owner_id" gorm:"index;type:varchar(36);not null" bson:"owner_id"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null" bson:"name"`
	Picture     string    `json:"picture" gorm:"not null" bson:"picture"`
	Description string    `json:"description" gorm:"not null" bson:"description"`
	Gender      string    `json:"gender" gorm:"type:varchar(16);index" bson:"gender"`
	Category    string    `json:"category" gorm:"type:varchar(16);index" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductInput is the body accepted by the create and update endpoints.
// Every field is required on both.
type ProductInput struct {
	Name        string        `json:"name" form:"name" validate:"required,max=50"`
	Picture     string        `json:"picture" form:"picture" validate:"required"`
	Description string        `json:"description" form:"description" validate:"required"`
	Gender      string        `json:"gender" form:"gender" validate:"required,oneof=male female"`
	Category    string        `json:"category" form:"category" validate:"required,oneof=makeup skincare haircare"`
	Price       NumericString `json:"price" form:"price" validate:"required,numeric,nonnegative"`
}

// PriceValue returns the validated price as a float.
func (in ProductInput) PriceValue() (float64, error) {
	return in.Price.Float64()
}

// NumericString holds a value that clients may send either as a JSON number or as a
// JSON string. Validation decides whether the text is actually numeric.
type NumericString string

// UnmarshalJSON accepts numbers, strings and null. Numbers are stored in plain
// decimal form.
func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("price must be a number or a string: %w", err)
		}
		// Exponent forms such as 1e2 become plain decimals.
		f, err := num.Float64()
		if err != nil {
			return fmt.Errorf("price %s is out of range: %w", num, err)
		}
		*n = NumericString(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
}

// Float64 parses the value.
func (n NumericString) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

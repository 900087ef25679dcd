package validator_test

import (
	"roamalto/shared/failure"
	"roamalto/shared/validator"
	"strings"
	"testing"
)

type leadPayload struct {
	Name       string `validate:"required,min=2" json:"name"`
	Email      string `validate:"required,email" json:"email"`
	Phone      string `validate:"omitempty,min=6" json:"phone"`
	DurationDy int    `validate:"gte=1,lte=60" json:"duration_days"`
	Status     string `validate:"oneof=new consulting docs booked closed" json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *leadPayload
		expectError bool
	}{
		{
			name: "valid struct",
			data: &leadPayload{
				Name:       "Ayu Lestari",
				Email:      "ayu@example.com",
				Phone:      "+6281234567",
				DurationDy: 7,
				Status:     "new",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &leadPayload{
				Email:      "ayu@example.com",
				DurationDy: 7,
				Status:     "new",
			},
			expectError: true,
		},
		{
			name: "name too short",
			data: &leadPayload{
				Name:       "A",
				Email:      "ayu@example.com",
				DurationDy: 7,
				Status:     "new",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &leadPayload{
				Name:       "Ayu Lestari",
				Email:      "not-an-email",
				DurationDy: 7,
				Status:     "new",
			},
			expectError: true,
		},
		{
			name: "duration out of range",
			data: &leadPayload{
				Name:       "Ayu Lestari",
				Email:      "ayu@example.com",
				DurationDy: 90,
				Status:     "new",
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: &leadPayload{
				Name:       "Ayu Lestari",
				Email:      "ayu@example.com",
				DurationDy: 7,
				Status:     "cancelled",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "test@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "booked",
			tag:         "oneof=new consulting docs booked closed",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "pending",
			tag:         "oneof=new consulting docs booked closed",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectCode  int
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Ayu Lestari","email":"ayu@example.com","duration_days":7,"status":"new"}`,
			expectError: false,
		},
		{
			name:        "schema violation",
			jsonBody:    `{"name":"Ayu Lestari","email":"not-an-email","duration_days":7,"status":"new"}`,
			expectCode:  422,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Ayu Lestari","email":}`,
			expectCode:  400,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectCode:  422,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data leadPayload
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Fatal("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Fatalf("expected no validation error, got: %v", err)
			}

			if tt.expectError && failure.GetCode(err) != tt.expectCode {
				t.Errorf("expected status code %d, got %d", tt.expectCode, failure.GetCode(err))
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &leadPayload{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}

type heroUploadPayload struct {
	File string `validate:"required,mimetypes=image/png image/jpeg,maxfilesize=5" json:"file"`
}

func TestFileValidation(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		expectError bool
	}{
		{
			name:        "allowed mimetype",
			file:        "data:image/png;base64,iVBORw0KGgo=",
			expectError: false,
		},
		{
			name:        "disallowed mimetype",
			file:        "data:application/pdf;base64,JVBERi0=",
			expectError: true,
		},
		{
			name:        "missing data URI prefix",
			file:        "iVBORw0KGgo=",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&heroUploadPayload{File: tt.file})

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

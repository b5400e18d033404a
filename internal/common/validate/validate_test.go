package validate_test

import (
	"testing"

	"github.com/aburtocampos/taskmanager/internal/common/validate"
)

type createRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

var messages = map[string]string{
	"Title": "Title is required",
}

func TestStruct_Valid(t *testing.T) {
	issues := validate.Struct(createRequest{Title: "Buy milk"}, messages)
	if issues != nil {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestStruct_MissingRequiredField(t *testing.T) {
	issues := validate.Struct(createRequest{Description: "no title"}, messages)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	if issues[0].Msg != "Title is required" {
		t.Errorf("expected overridden message, got %q", issues[0].Msg)
	}
	if issues[0].Param != "title" {
		t.Errorf("expected param title, got %q", issues[0].Param)
	}
}

func TestStruct_DefaultMessage(t *testing.T) {
	issues := validate.Struct(createRequest{}, nil)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", issues)
	}
	if issues[0].Msg != "Title is required" {
		t.Errorf("expected default message, got %q", issues[0].Msg)
	}
}

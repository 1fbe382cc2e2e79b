package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_IssueRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       issueRequest
		wantField string
	}{
		{"valid", issueRequest{MemberID: "m-001", BookID: "bk-001"}, ""},
		{"missing member", issueRequest{BookID: "bk-001"}, "memberID"},
		{"missing book", issueRequest{MemberID: "m-001"}, "bookID"},
		{"member id with slash", issueRequest{MemberID: "m/001", BookID: "bk-001"}, "memberID"},
		{"book id with spaces", issueRequest{MemberID: "m-001", BookID: "bk 001"}, "bookID"},
		{"leading dash", issueRequest{MemberID: "-m", BookID: "bk-001"}, "memberID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ValidateStruct(tt.req)
			if tt.wantField == "" {
				assert.Nil(t, details)
				return
			}
			if assert.Len(t, details, 1) {
				assert.Equal(t, tt.wantField, details[0].Field)
			}
		})
	}
}

func TestValidateStruct_LoginRequest(t *testing.T) {
	details := ValidateStruct(loginRequest{Username: "desk", Password: "short"})
	if assert.Len(t, details, 1) {
		assert.Equal(t, "password", details[0].Field)
	}

	assert.Nil(t, ValidateStruct(loginRequest{Username: "desk", Password: "long-enough-pass"}))
}

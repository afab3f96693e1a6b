package s3_test

import (
	"errors"
	"fmt"
	"hotelier/infras/s3"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsPreconditionFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "precondition failed", err: &smithy.GenericAPIError{Code: "PreconditionFailed"}, want: true},
		{name: "concurrent conditional write", err: &smithy.GenericAPIError{Code: "ConditionalRequestConflict"}, want: true},
		{name: "wrapped", err: fmt.Errorf("put: %w", &smithy.GenericAPIError{Code: "PreconditionFailed"}), want: true},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: false},
		{name: "plain error", err: errors.New("timeout"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3.IsPreconditionFailed(tt.err))
		})
	}
}

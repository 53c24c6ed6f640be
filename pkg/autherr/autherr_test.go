package autherr

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "user not found code",
			text:        "auth/user-not-found",
			wantKind:    KindUserNotFound,
			wantMessage: "Invalid Id: User Not Found",
		},
		{
			name:        "user not found embedded in longer text",
			text:        "Firebase: Error (auth/user-not-found).",
			wantKind:    KindUserNotFound,
			wantMessage: "Invalid Id: User Not Found",
		},
		{
			name:        "wrong password code",
			text:        "auth/wrong-password",
			wantKind:    KindPasswordMismatch,
			wantMessage: "Password Mismatch",
		},
		{
			name:        "too many requests",
			text:        "auth/too-many-requests",
			wantKind:    KindRateLimited,
			wantMessage: "Temporarily disabled due to many failed logins",
		},
		{
			name:        "unrecognized text falls through to rate limited",
			text:        "network unreachable",
			wantKind:    KindRateLimited,
			wantMessage: "Temporarily disabled due to many failed logins",
		},
		{
			// Priority is fixed: the user-not-found rule is evaluated
			// first, so a text carrying both markers classifies as
			// UserNotFound.
			name:        "both markers present",
			text:        "auth/user-not-found and also auth/wrong-password",
			wantKind:    KindUserNotFound,
			wantMessage: "Invalid Id: User Not Found",
		},
		{
			name:        "both markers reversed order in text",
			text:        "wrong-password before user-not-found",
			wantKind:    KindUserNotFound,
			wantMessage: "Invalid Id: User Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(errors.New(tt.text))
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestClassifyPreservesCause(t *testing.T) {
	cause := fmt.Errorf("wrapped: %w", ErrWrongPassword)
	got := Classify(cause)

	if !errors.Is(got, ErrWrongPassword) {
		t.Error("classified error does not unwrap to the provider rejection")
	}
}

func TestAs(t *testing.T) {
	classified := Classify(ErrUserNotFound)
	wrapped := fmt.Errorf("sign-in: %w", classified)

	ce, ok := As(wrapped)
	if !ok {
		t.Fatal("As failed to find classified error in chain")
	}
	if ce.Kind != KindUserNotFound {
		t.Errorf("Kind = %v, want %v", ce.Kind, KindUserNotFound)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As matched a non-classified error")
	}
}

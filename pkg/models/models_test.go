package models

import (
	"strings"
	"testing"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name:    "valid",
			user:    User{Username: "alice", PasswordHash: "x"},
			wantErr: false,
		},
		{
			name:    "missing username",
			user:    User{PasswordHash: "x"},
			wantErr: true,
		},
		{
			name:    "missing hash",
			user:    User{Username: "alice"},
			wantErr: true,
		},
		{
			name:    "username too long",
			user:    User{Username: strings.Repeat("a", 256), PasswordHash: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	u := User{Username: "alice", PasswordHash: hash}
	if !u.CheckPassword("s3cret") {
		t.Error("correct password should verify")
	}
	if u.CheckPassword("wrong") {
		t.Error("wrong password should not verify")
	}
}

func TestFolderIsRoot(t *testing.T) {
	parent := "f-1"

	if root := (&Folder{}).IsRoot(); !root {
		t.Error("folder without parent should be root")
	}
	if root := (&Folder{ParentID: &parent}).IsRoot(); root {
		t.Error("folder with parent should not be root")
	}
}

func TestAllModels(t *testing.T) {
	if got := len(AllModels()); got != 3 {
		t.Errorf("AllModels() returned %d models, want 3", got)
	}
}

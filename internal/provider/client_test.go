package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestNew_Twilio(t *testing.T) {
	client, err := New(Config{
		Provider:         NameTwilio,
		TwilioAccountSID: "ACtest",
		TwilioAPIKey:     "SKtest",
		TwilioAPISecret:  "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Name() != NameTwilio {
		t.Errorf("expected %s, got %s", NameTwilio, client.Name())
	}
}

func TestNew_DefaultsToTwilio(t *testing.T) {
	client, err := New(Config{
		TwilioAccountSID: "ACtest",
		TwilioAPIKey:     "SKtest",
		TwilioAPISecret:  "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Name() != NameTwilio {
		t.Errorf("expected %s, got %s", NameTwilio, client.Name())
	}
}

func TestNew_LiveKit(t *testing.T) {
	client, err := New(Config{
		Provider:         NameLiveKit,
		LiveKitURL:       "wss://livekit.example.com",
		LiveKitAPIKey:    "APIkey",
		LiveKitAPISecret: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Name() != NameLiveKit {
		t.Errorf("expected %s, got %s", NameLiveKit, client.Name())
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"twilio without secret", Config{Provider: NameTwilio, TwilioAccountSID: "AC", TwilioAPIKey: "SK"}},
		{"twilio without account", Config{Provider: NameTwilio, TwilioAPIKey: "SK", TwilioAPISecret: "s"}},
		{"twilio empty", Config{Provider: NameTwilio}},
		{"livekit without url", Config{Provider: NameLiveKit, LiveKitAPIKey: "k", LiveKitAPISecret: "s"}},
		{"livekit empty", Config{Provider: NameLiveKit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.cfg)
			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("expected ErrMissingCredentials, got %v", err)
			}
			if client != nil {
				t.Error("expected nil client")
			}
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "jitsi"})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err      *Error
		contains string
	}{
		{&Error{Status: 404, Code: 20404, Message: "not found"}, "vendor error 20404 (status 404): not found"},
		{&Error{Status: 401, Message: "bad key"}, "vendor error (status 401): bad key"},
		{&Error{Message: "dial tcp"}, "vendor error: dial tcp"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.contains {
			t.Errorf("expected %q, got %q", tt.contains, got)
		}
	}
}

func TestError_NotFound(t *testing.T) {
	if !(&Error{Status: http.StatusNotFound}).NotFound() {
		t.Error("expected 404 to be not found")
	}
	if (&Error{Status: http.StatusBadRequest}).NotFound() {
		t.Error("expected 400 not to be not found")
	}
}

func TestDescribe(t *testing.T) {
	if Describe(nil) != nil {
		t.Error("expected nil for nil error")
	}

	vendorErr := &Error{Status: 404, Code: 20404, Message: "missing"}
	if got := Describe(vendorErr); got != vendorErr {
		t.Errorf("expected vendor error to pass through, got %v", got)
	}

	wrapped := errors.Join(errors.New("context"), vendorErr)
	if got := Describe(wrapped); got != vendorErr {
		t.Errorf("expected wrapped vendor error to be unwrapped, got %v", got)
	}

	plain := Describe(errors.New("boom"))
	e, ok := plain.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", plain)
	}
	if e.Message != "boom" {
		t.Errorf("expected message boom, got %s", e.Message)
	}
}

func TestError_JSON(t *testing.T) {
	data, err := json.Marshal(&Error{Status: 404, Code: 20404, Message: "missing", MoreInfo: "https://www.twilio.com/docs/errors/20404"})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"status":404`, `"code":20404`, `"message":"missing"`, `"moreInfo":"https://www.twilio.com/docs/errors/20404"`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected JSON to contain %s, got %s", want, s)
		}
	}
}

// decodeJWT verifies an HS256 token against secret and returns its claims.
func decodeJWT(t *testing.T, token, secret string) (map[string]any, map[string]any) {
	t.Helper()

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 JWT segments, got %d", len(parts))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(parts[0] + "." + parts[1]))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if parts[2] != expected {
		t.Fatal("JWT signature does not match secret")
	}

	var header, claims map[string]any
	for i, dst := range []*map[string]any{&header, &claims} {
		raw, err := base64.RawURLEncoding.DecodeString(parts[i])
		if err != nil {
			t.Fatalf("failed to decode segment %d: %v", i, err)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			t.Fatalf("failed to unmarshal segment %d: %v", i, err)
		}
	}
	return header, claims
}

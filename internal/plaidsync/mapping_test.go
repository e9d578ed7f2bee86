package plaidsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMerchantName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "title cases raw descriptor",
			input: "COFFEE ROASTERS",
			want:  "Coffee Roasters",
		},
		{
			name:  "strips trailing reference number",
			input: "ACME UTILITIES 8837261094",
			want:  "Acme Utilities",
		},
		{
			name:  "keeps short trailing digits",
			input: "STORE 42",
			want:  "Store 42",
		},
		{
			name:  "strips corporate suffix",
			input: "STREAMING SERVICES LLC",
			want:  "Streaming Services",
		},
		{
			name:  "strips stacked suffixes",
			input: "WIDGET CO LTD",
			want:  "Widget",
		},
		{
			name:  "capitalizes after punctuation",
			input: "o'brien's market",
			want:  "O'Brien'S Market",
		},
		{
			name:  "bare digits unchanged",
			input: "12345678",
			want:  "12345678",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMerchantName(tt.input))
		})
	}
}

func TestStaticTokens(t *testing.T) {
	tokens := StaticTokens{"user-1": "access-sandbox-abc"}

	token, err := tokens.AccessToken("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "access-sandbox-abc", token)

	_, err = tokens.AccessToken("user-2")
	assert.Error(t, err)

	empty := StaticTokens{"user-3": ""}
	_, err = empty.AccessToken("user-3")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "sandbox ok", cfg: Config{ClientID: "id", Secret: "s", Environment: "sandbox"}},
		{name: "production ok", cfg: Config{ClientID: "id", Secret: "s", Environment: "production"}},
		{name: "missing client id", cfg: Config{Secret: "s", Environment: "sandbox"}, wantErr: true},
		{name: "missing secret", cfg: Config{ClientID: "id", Environment: "sandbox"}, wantErr: true},
		{name: "missing environment", cfg: Config{ClientID: "id", Secret: "s"}, wantErr: true},
		{name: "unknown environment", cfg: Config{ClientID: "id", Secret: "s", Environment: "development"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

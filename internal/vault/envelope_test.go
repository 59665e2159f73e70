package vault

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/model"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`{"records":[{"customer_code":"C1","customer_name":"ACME"}]}`)

	envelope, err := Encrypt(plaintext, "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, envelope.Salt)
	require.NotEmpty(t, envelope.IV)
	require.NotEmpty(t, envelope.Data)
	assert.Equal(t, Iterations, envelope.Iterations)

	decrypted, err := envelope.Decrypt("hunter2")
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptRejectsEmptyPassword(t *testing.T) {
	_, err := Encrypt([]byte("{}"), "")
	require.ErrorIs(t, err, common.ErrEmptyPassword)
}

func TestEncryptProducesFreshSaltAndIV(t *testing.T) {
	a, err := Encrypt([]byte("{}"), "pw")
	require.NoError(t, err)
	b, err := Encrypt([]byte("{}"), "pw")
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.IV, b.IV)
	assert.NotEqual(t, a.Data, b.Data)
}

func TestDecryptFailuresAreIndistinguishable(t *testing.T) {
	envelope, err := Encrypt([]byte(`{"records":[]}`), "correct")
	require.NoError(t, err)

	tests := []struct {
		mutate func(e *Envelope)
		name   string
		pass   string
	}{
		{name: "wrong password", pass: "wrong", mutate: func(_ *Envelope) {}},
		{name: "garbage salt", pass: "correct", mutate: func(e *Envelope) { e.Salt = "!!!" }},
		{name: "garbage iv", pass: "correct", mutate: func(e *Envelope) { e.IV = "!!!" }},
		{name: "garbage data", pass: "correct", mutate: func(e *Envelope) { e.Data = "!!!" }},
		{name: "truncated data", pass: "correct", mutate: func(e *Envelope) {
			e.Data = base64.StdEncoding.EncodeToString([]byte("short"))
		}},
		{name: "tampered ciphertext", pass: "correct", mutate: func(e *Envelope) {
			raw, decErr := base64.StdEncoding.DecodeString(e.Data)
			require.NoError(t, decErr)
			raw[0] ^= 0xFF
			e.Data = base64.StdEncoding.EncodeToString(raw)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := *envelope
			tt.mutate(&e)
			_, err := e.Decrypt(tt.pass)
			require.ErrorIs(t, err, ErrIncorrectPassword)
		})
	}
}

func TestDecryptUsesStoredIterations(t *testing.T) {
	envelope, err := Encrypt([]byte("payload"), "pw")
	require.NoError(t, err)

	// Zero and negative counts fall back to the current constant, so old
	// envelopes without the field still open.
	envelope.Iterations = 0
	_, err = envelope.Decrypt("pw")
	require.NoError(t, err)

	envelope.Iterations = -1
	_, err = envelope.Decrypt("pw")
	require.NoError(t, err)
}

func TestDecryptPayloadParsesCombinedDocument(t *testing.T) {
	plaintext := []byte(`{
		"records": [{"customer_code": "C1", "customer_name": "ACME", "sales_2025_est_gross": 1000}],
		"monthlyData": {"actual": [{"customer_code": "C1", "month": 3, "gross": 10, "net": 8}], "forecast": []},
		"customerMap": {"map": {"C1": {"category": "Retail", "region": "EU"}}}
	}`)

	envelope, err := Encrypt(plaintext, "pw")
	require.NoError(t, err)

	payload, err := envelope.DecryptPayload("pw")
	require.NoError(t, err)
	require.Len(t, payload.Records, 1)
	assert.Equal(t, "C1", payload.Records[0].CustomerCode)
	assert.InEpsilon(t, 1000.0, payload.Records[0].Sales2025EstGross.Float(), 1e-9)
	require.Len(t, payload.MonthlyData.Actual, 1)
	assert.Equal(t, 3, payload.MonthlyData.Actual[0].Month)
	assert.Contains(t, payload.CustomerMap.Map, "C1")
}

func TestDecryptPayloadRejectsNonJSONPlaintext(t *testing.T) {
	envelope, err := Encrypt([]byte("this is not json"), "pw")
	require.NoError(t, err)

	// Parse failure after successful decryption must look exactly like a
	// wrong password.
	_, err = envelope.DecryptPayload("pw")
	require.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "envelope.json")

	envelope, err := Encrypt([]byte(`{"records":[]}`), "pw")
	require.NoError(t, err)
	require.NoError(t, envelope.WriteFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, envelope.Salt, loaded.Salt)
	assert.Equal(t, envelope.IV, loaded.IV)
	assert.Equal(t, envelope.Iterations, loaded.Iterations)
	assert.Equal(t, envelope.Data, loaded.Data)

	_, err = loaded.Decrypt("pw")
	require.NoError(t, err)
}

func TestReadFileRejectsIncompleteEnvelope(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"salt": "abc"}`), 0o600))

	_, err := ReadFile(path)
	require.Error(t, err)
}

func TestModelPayloadRoundTripThroughEnvelope(t *testing.T) {
	payload := model.Payload{
		Records: []model.SalesRecord{{
			CustomerCode: "C9", CustomerName: "Trading House Askona LLC",
			Region: "EU", CustomerCategory: "Furniture",
		}},
		MonthlyData: model.MonthlyData{Actual: []model.MonthlyRecord{}, Forecast: []model.MonthlyRecord{}},
		CustomerMap: model.CustomerMap{Map: map[string]model.CustomerMeta{}},
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	envelope, err := Encrypt(raw, "pw")
	require.NoError(t, err)

	decrypted, err := envelope.DecryptPayload("pw")
	require.NoError(t, err)
	require.Len(t, decrypted.Records, 1)
	assert.Equal(t, "C9", decrypted.Records[0].CustomerCode)
}

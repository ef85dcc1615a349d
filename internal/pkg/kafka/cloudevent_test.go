package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloudEvent(t *testing.T) {
	type payload struct {
		PhotoID string `json:"photo_id"`
	}

	ce, err := NewCloudEvent("photo-service", "photo.created", payload{PhotoID: "abc"})
	require.NoError(t, err)

	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.Equal(t, "photo-service", ce.Source)
	assert.Equal(t, "photo.created", ce.Type)
	assert.Equal(t, "application/json", ce.DataContentType)
	assert.NotEmpty(t, ce.ID)
	assert.False(t, ce.Time.IsZero())

	var got payload
	require.NoError(t, ce.ParseData(&got))
	assert.Equal(t, "abc", got.PhotoID)
}

func TestParseCloudEvent_Roundtrip(t *testing.T) {
	ce, err := NewCloudEvent("photo-service", "photo.liked", map[string]string{"user": "alice"})
	require.NoError(t, err)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	got, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ce.ID, got.ID)
	assert.Equal(t, ce.Type, got.Type)
}

func TestParseCloudEvent_Invalid(t *testing.T) {
	_, err := ParseCloudEvent([]byte("{not json"))
	assert.Error(t, err)
}

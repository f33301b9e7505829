package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateMarshalJSON(t *testing.T) {
	d := NewDate(time.Date(2025, 1, 31, 15, 4, 5, 0, time.UTC))
	b, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-01-31"`, string(b))
}

func TestDateUnmarshalJSON(t *testing.T) {
	var d Date
	assert.NoError(t, json.Unmarshal([]byte(`"2025-01-31"`), &d))
	assert.Equal(t, "2025-01-31", d.String())

	// full timestamps from older payloads are truncated to their date
	assert.NoError(t, json.Unmarshal([]byte(`"2025-01-31T10:30:00Z"`), &d))
	assert.Equal(t, "2025-01-31", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"31/01/2025"`), &d))
}

func TestInvoiceStatusValidate(t *testing.T) {
	for _, status := range []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
	} {
		assert.NoError(t, status.Validate())
	}

	assert.Error(t, InvoiceStatus("annulée").Validate())
	assert.Error(t, InvoiceStatus("").Validate())
}

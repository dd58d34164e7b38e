package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderUnmarshalDefaultsStatus(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"items":[{"name":"Soup","price":5,"quantity":2}],"totalAmount":10}`), &o))

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(7), o.ID)
	assert.Equal(t, 2, o.ItemCount())
	assert.Nil(t, o.OrderDate)
}

func TestOrderUnmarshalLocalDate(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"status":"COMPLETED","orderDate":"2024-03-01T18:30:00"}`), &o))

	require.NotNil(t, o.OrderDate)
	assert.Equal(t, time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC), o.OrderDate.Time)
	assert.Equal(t, StatusCompleted, o.Status)
}

func TestOrderUnmarshalBadDate(t *testing.T) {
	var o Order
	assert.Error(t, json.Unmarshal([]byte(`{"id":1,"orderDate":"yesterday"}`), &o))
}

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		order   Order
		wantErr bool
	}{
		{"valid", Order{Status: StatusPending, Items: []OrderItem{{Name: "Tea", Price: 0, Quantity: 1}}}, false},
		{"negative total", Order{Status: StatusPending, TotalAmount: -1}, true},
		{"negative price", Order{Status: StatusPending, Items: []OrderItem{{Price: -2, Quantity: 1}}}, true},
		{"zero quantity", Order{Status: StatusPending, Items: []OrderItem{{Price: 2}}}, true},
		{"unknown status", Order{Status: "SERVED"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOrder)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderQRRequest(t *testing.T) {
	date := &Timestamp{Time: time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC)}
	o := Order{
		ID:          7,
		Items:       []OrderItem{{Name: "Soup", Price: 5, Quantity: 2}, {Name: "Bread", Price: 1, Quantity: 1}},
		TotalAmount: 11,
		OrderDate:   date,
	}

	assert.Equal(t, QRRequest{OrderID: 7, Amount: 11, Items: 3, Date: "2024-03-01T18:30:00Z"}, o.QRRequest())
}

func TestProfileDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Profile{FirstName: "Ada", LastName: "Lovelace"}.DisplayName())
	assert.Equal(t, "Ada", Profile{FirstName: "Ada"}.DisplayName())
	assert.Equal(t, "", Profile{}.DisplayName())
}

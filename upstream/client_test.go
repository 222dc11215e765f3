package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pravinale/pantonefrontend/models"
)

func TestClient_Stock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/P1/stock/Red/M", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int{"stock": 7})
	}))
	defer srv.Close()

	stock, err := New(srv.URL).Stock(context.Background(), "P1", "Red", "M")
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestClient_StockErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Stock(context.Background(), "P1", "Red", "M")
	assert.Error(t, err)
}

func TestClient_StockErrorOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Stock(context.Background(), "P1", "Red", "M")
	assert.Error(t, err)
}

func TestClient_CreateOrderExpects201(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)

		var got models.Order
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "u-1", got.UserID)
		require.Len(t, got.Products, 1)
		assert.Equal(t, "Red", got.Products[0].Color)

		got.ID = "server-id-1"
		got.Status = "pending"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]models.Order{"order": got})
	}))
	defer srv.Close()

	order := models.Order{
		OrderID:       "20240101-abc",
		UserID:        "u-1",
		Products:      []models.OrderProduct{{ProductID: "P1", Name: "Shirt", Color: "Red", Size: "M", Quantity: 2}},
		Price:         204,
		PaymentMethod: models.PaymentCashInHand,
	}
	placed, err := New(srv.URL).CreateOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "server-id-1", placed.ID)
	assert.Equal(t, "pending", placed.Status)
}

func TestClient_CreateOrderRejectedOn200(t *testing.T) {
	// Anything other than 201 is a placement failure, even a 200.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateOrder(context.Background(), models.Order{})
	assert.Error(t, err)
}

func TestClient_UpdateStockPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/update-stock", r.URL.Path)
		var got struct {
			Products []models.StockAdjustment `json:"products"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Len(t, got.Products, 1)
		assert.Equal(t, models.StockAdjustment{ProductID: "P1", Color: "Red", Size: "M", Quantity: 2}, got.Products[0])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := New(srv.URL).UpdateStock(context.Background(), []models.StockAdjustment{
		{ProductID: "P1", Color: "Red", Size: "M", Quantity: 2},
	})
	assert.NoError(t, err)
}

func TestClient_InitializeEsewa(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/initialize-esewa", r.URL.Path)
		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "server-id-1", got["orderId"])
		assert.Equal(t, 258.0, got["totalPrice"])

		w.Write([]byte(`{
			"success": true,
			"purchasedItemData": {"_id": "txn-1", "price": 258},
			"payment": {"signature": "sig==", "signed_field_names": "total_amount,transaction_uuid,product_code"}
		}`))
	}))
	defer srv.Close()

	init, err := New(srv.URL).InitializeEsewa(context.Background(), "server-id-1", 258)
	require.NoError(t, err)
	assert.Equal(t, "txn-1", init.PurchasedItem.ID)
	assert.Equal(t, 258.0, init.PurchasedItem.Price)
	assert.Equal(t, "sig==", init.Payment.Signature)
}

func TestClient_InitializeEsewaUnsuccessfulPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).InitializeEsewa(context.Background(), "server-id-1", 258)
	assert.Error(t, err)
}

func TestClient_CancelOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/orders/server-id-1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL).CancelOrder(context.Background(), "server-id-1"))
}

func TestClient_Profile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/me/u-1", r.URL.Path)
		w.Write([]byte(`{"_id":"u-1","username":"ram","phonenumber":"98000","email":"ram@x.np","address":"KTM","role":"user"}`))
	}))
	defer srv.Close()

	profile, err := New(srv.URL).Profile(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ram", profile.Username)
	assert.Equal(t, "98000", profile.PhoneNumber)
	assert.Equal(t, models.RoleUser, profile.Role)
}

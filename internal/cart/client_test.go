package cart

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cust-1/rest-1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cart-1",
			"customerId": "cust-1",
			"restaurantId": "rest-1",
			"items": [
				{"itemId": "i1", "itemName": "Taco", "quantity": 2, "potionSize": "Medium", "price": 5.0, "totalPrice": 10.0, "image": "taco.png"}
			],
			"totalPrice": 10.0
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	snap, err := c.Fetch(context.Background(), "cust-1", "rest-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(snap.Items))
	}
	it := snap.Items[0]
	if it.ItemID != "i1" || it.Quantity != 2 || it.TotalPrice != 10.0 || it.PotionSize != "Medium" {
		t.Fatalf("item mismatch: %+v", it)
	}
	if snap.TotalPrice != 10.0 {
		t.Fatalf("total mismatch: %v", snap.TotalPrice)
	}
}

func TestFetch_EmptyCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "cart-1", "items": [], "totalPrice": 0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	_, err := c.Fetch(context.Background(), "cust-1", "rest-1")
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	_, err := c.Fetch(context.Background(), "cust-1", "rest-1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(srv.URL, 2*time.Second)
	_, err := c.Fetch(context.Background(), "cust-1", "rest-1")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linkon63/neocomerze/internal/cart"
	"github.com/linkon63/neocomerze/internal/domain"
)

func withSession(request *http.Request, sessionID string) *http.Request {
	return request.WithContext(context.WithValue(request.Context(), sessionKey, sessionID))
}

func addItemRequest(t *testing.T, dto AddItemRequestDTO) *http.Request {
	t.Helper()
	body, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	request := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewBuffer(body))
	return withSession(request, "test-session")
}

func TestAddItem_Success(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	variantID := int64(102)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, addItemRequest(t, AddItemRequestDTO{ProductID: 10, VariantID: &variantID, Quantity: 2}))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 1 {
		t.Fatalf("Expected 1 cart line, got %d", len(response.Items))
	}
	line := response.Items[0]
	if line.VariantID == nil || *line.VariantID != 102 {
		t.Errorf("Expected variant 102, got %+v", line.VariantID)
	}
	if line.Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", line.Quantity)
	}
	if line.VariantLabel != "Blue / S" {
		t.Errorf("Expected variant label 'Blue / S', got '%s'", line.VariantLabel)
	}
	if response.Toast != "Added to cart" {
		t.Errorf("Expected toast 'Added to cart', got '%s'", response.Toast)
	}
	if response.Total.Cents != 109800 {
		t.Errorf("Expected total 109800 cents, got %d", response.Total.Cents)
	}
}

func TestAddItem_MergesSameIdentity(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	variantID := int64(101)
	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		handler.AddItem(recorder, addItemRequest(t, AddItemRequestDTO{ProductID: 10, VariantID: &variantID, Quantity: 1}))
		if recorder.Code != http.StatusCreated {
			t.Fatalf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
		}
	}

	lines := sessions.Get("test-session").Lines()
	if len(lines) != 1 {
		t.Fatalf("Expected a single merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Errorf("Expected merged quantity 2, got %d", lines[0].Quantity)
	}
}

func TestAddItem_DefaultsToFirstVariant(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, addItemRequest(t, AddItemRequestDTO{ProductID: 10, Quantity: 1}))

	lines := sessions.Get("test-session").Lines()
	if len(lines) != 1 {
		t.Fatalf("Expected 1 cart line, got %d", len(lines))
	}
	if lines[0].VariantID == nil || *lines[0].VariantID != 101 {
		t.Errorf("Expected default variant 101, got %+v", lines[0].VariantID)
	}
}

func TestAddItem_FractionalQuantityFloored(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, addItemRequest(t, AddItemRequestDTO{ProductID: 10, Quantity: 2.9}))

	lines := sessions.Get("test-session").Lines()
	if lines[0].Quantity != 2 {
		t.Errorf("Expected floored quantity 2, got %d", lines[0].Quantity)
	}
}

func TestAddItem_NonPositiveQuantityClamped(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, addItemRequest(t, AddItemRequestDTO{ProductID: 10, Quantity: -3}))

	lines := sessions.Get("test-session").Lines()
	if lines[0].Quantity != 1 {
		t.Errorf("Expected clamped quantity 1, got %d", lines[0].Quantity)
	}
}

func TestAddItem_UnknownVariant(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	variantID := int64(999)
	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, addItemRequest(t, AddItemRequestDTO{ProductID: 10, VariantID: &variantID, Quantity: 1}))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if len(sessions.Get("test-session").Lines()) != 0 {
		t.Errorf("Expected cart untouched after rejected variant")
	}
}

func TestAddItem_ProductNotFound(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.AddItem(recorder, addItemRequest(t, AddItemRequestDTO{ProductID: 10, Quantity: 1}))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestGetCart_Empty(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.Get(recorder, withSession(httptest.NewRequest("GET", "/api/v1/cart", nil), "test-session"))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
}

func TestRemoveItem_Success(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	variantID := int64(101)
	handler.AddItem(httptest.NewRecorder(), addItemRequest(t, AddItemRequestDTO{ProductID: 10, VariantID: &variantID, Quantity: 1}))

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("DELETE", "/api/v1/cart/items?product_id=10&variant_id=101", nil), "test-session")
	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if len(sessions.Get("test-session").Lines()) != 0 {
		t.Errorf("Expected cart emptied after remove")
	}
}

func TestRemoveItem_MissingLineIsNoOp(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	variantID := int64(101)
	handler.AddItem(httptest.NewRecorder(), addItemRequest(t, AddItemRequestDTO{ProductID: 10, VariantID: &variantID, Quantity: 1}))

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("DELETE", "/api/v1/cart/items?product_id=10&variant_id=102", nil), "test-session")
	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if len(sessions.Get("test-session").Lines()) != 1 {
		t.Errorf("Expected unmatched remove to leave cart untouched")
	}
}

func TestRemoveItem_InvalidProductID(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("DELETE", "/api/v1/cart/items?product_id=abc", nil), "test-session")
	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestClearCart(t *testing.T) {
	sessions := cart.NewSessions()
	defer sessions.Close()
	handler := NewCartHandler(sessions, CatalogMock{products: []domain.Product{shirtProduct()}}, 5*time.Second)

	handler.AddItem(httptest.NewRecorder(), addItemRequest(t, AddItemRequestDTO{ProductID: 10, Quantity: 1}))

	recorder := httptest.NewRecorder()
	handler.Clear(recorder, withSession(httptest.NewRequest("DELETE", "/api/v1/cart", nil), "test-session"))

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if len(sessions.Get("test-session").Lines()) != 0 {
		t.Errorf("Expected cart cleared")
	}
}

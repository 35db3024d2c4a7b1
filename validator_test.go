package posv2_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	posv2 "github.com/NetRider88/POSV2"
	"github.com/NetRider88/POSV2/imagecheck"
	"github.com/NetRider88/POSV2/payload"
	"github.com/NetRider88/POSV2/result"
	"github.com/NetRider88/POSV2/schema"
)

func newValidator(t *testing.T, opts ...posv2.Option) *posv2.Validator {
	t.Helper()
	v, err := posv2.New(opts...)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

// catalogWithImage builds a structurally valid catalog push whose single
// Image item points at the given URL.
func catalogWithImage(imageID, url string) map[string]any {
	return map[string]any{
		"items": map[string]any{
			"menu_1": map[string]any{
				"type":     "Menu",
				"title":    map[string]any{"default": "Lunch"},
				"menuType": "DELIVERY",
				"products": map[string]any{
					"p1": map[string]any{"id": "prod_1", "type": "Product"},
				},
			},
			"prod_1": map[string]any{
				"type":  "Product",
				"title": map[string]any{"default": "Burger"},
				"price": "12.50",
			},
			imageID: map[string]any{
				"type": "Image",
				"url":  url,
			},
		},
	}
}

func validOrder() map[string]any {
	return map[string]any{
		"orderId":         "o1",
		"customerDetails": map[string]any{"name": "A", "phone": "1"},
		"items": []any{
			map[string]any{"id": "i1", "quantity": float64(1), "price": float64(10)},
		},
		"totalAmount": float64(10),
		"currency":    "AED",
	}
}

// servePNG returns a test server responding with a generated PNG of the
// given pixel dimensions on every path.
func servePNG(t *testing.T, width, height int) *httptest.Server {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
}

func TestValidateRequestValidOrder(t *testing.T) {
	res := newValidator(t).ValidateRequest(validOrder())

	if !res.IsValid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
	if res.RequestType != payload.TypeOrder {
		t.Fatalf("expected Order Payload, got %q", res.RequestType)
	}
	if len(res.Errors) != 0 || len(res.ErrorCodes) != 0 || len(res.DetailedErrors) != 0 {
		t.Fatal("valid result must carry no errors")
	}
}

func TestValidateRequestEmptyOrderItems(t *testing.T) {
	order := validOrder()
	order["items"] = []any{}

	res := newValidator(t).ValidateRequest(order)

	if res.IsValid {
		t.Fatal("expected invalid")
	}
	if !hasCode(res.ErrorCodes, "MISSING_ORDER_ITEMS") {
		t.Fatalf("expected MISSING_ORDER_ITEMS, got %v", res.ErrorCodes)
	}
}

func TestValidateRequestOrderIDWinsOverItems(t *testing.T) {
	order := validOrder()
	// An items object alongside orderId must not flip classification.
	order["items"] = map[string]any{"m": map[string]any{"type": "Menu"}}

	res := newValidator(t).ValidateRequest(order)

	if res.RequestType != payload.TypeOrder {
		t.Fatalf("expected Order Payload, got %q", res.RequestType)
	}
}

func TestValidateRequestEmptyItemsIsUnknown(t *testing.T) {
	res := newValidator(t).ValidateRequest(map[string]any{"items": map[string]any{}})

	if res.RequestType != payload.TypeUnknown {
		t.Fatalf("expected Unknown, got %q", res.RequestType)
	}
	if res.IsValid {
		t.Fatal("expected invalid")
	}
	if !hasCode(res.ErrorCodes, "UNKNOWN_REQUEST_TYPE") {
		t.Fatalf("expected UNKNOWN_REQUEST_TYPE, got %v", res.ErrorCodes)
	}
}

func TestValidateRequestMalformedString(t *testing.T) {
	res := newValidator(t).ValidateRequest("this is not json {{")

	if res.RequestType != payload.TypeUnknown {
		t.Fatalf("expected Unknown, got %q", res.RequestType)
	}
	if res.IsValid {
		t.Fatal("expected invalid")
	}
}

func TestValidateRequestStringBody(t *testing.T) {
	res := newValidator(t).ValidateRequest(`{"orderId":"o1","customerDetails":{"name":"A","phone":"1"},"items":[{"id":"i1","quantity":1,"price":10}],"totalAmount":10,"currency":"AED"}`)

	if !res.IsValid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
	if res.RequestType != payload.TypeOrder {
		t.Fatalf("expected Order Payload, got %q", res.RequestType)
	}
}

func TestValidateRequestShortCurrency(t *testing.T) {
	order := validOrder()
	order["currency"] = "AE"

	res := newValidator(t).ValidateRequest(order)

	if res.IsValid {
		t.Fatal("expected invalid")
	}
	if !hasCode(res.ErrorCodes, "INVALID_CURRENCY_CODE") {
		t.Fatalf("expected INVALID_CURRENCY_CODE, got %v", res.ErrorCodes)
	}
}

func TestValidateRequestImageURLShape(t *testing.T) {
	v := newValidator(t)

	// Short extension-less non-CDN URL fails the shape check.
	res := v.ValidateRequest(catalogWithImage("img_1", "https://cdn.example.com/a"))
	if res.IsValid {
		t.Fatal("expected invalid")
	}
	if !hasCode(res.ErrorCodes, "INVALID_IMAGE_URL") {
		t.Fatalf("expected INVALID_IMAGE_URL, got %v", res.ErrorCodes)
	}

	// The same item with a recognized extension passes.
	res = v.ValidateRequest(catalogWithImage("img_1", "https://cdn.example.com/a/photo.jpg"))
	if !res.IsValid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
}

func TestValidateRequestAlignment(t *testing.T) {
	order := validOrder()
	order["currency"] = "AE"
	order["orderId"] = "" // present but empty: still classified as an order
	order["totalAmount"] = "ten"

	res := newValidator(t).ValidateRequest(order)

	if res.IsValid {
		t.Fatal("expected invalid")
	}
	if len(res.Errors) != len(res.ErrorCodes) || len(res.ErrorCodes) != len(res.DetailedErrors) {
		t.Fatalf("sequences misaligned: %d errors, %d codes, %d detailed",
			len(res.Errors), len(res.ErrorCodes), len(res.DetailedErrors))
	}
	for i, d := range res.DetailedErrors {
		if res.ErrorCodes[i] != d.ErrorCode {
			t.Fatalf("code %d misaligned: %q vs %q", i, res.ErrorCodes[i], d.ErrorCode)
		}
	}
}

func TestValidateRequestOverlaySchema(t *testing.T) {
	v := newValidator(t, posv2.WithOverlaySchema(schema.ItemProduct, map[string]any{
		"type":     "object",
		"required": []any{"description"},
	}))

	res := v.ValidateRequest(catalogWithImage("img_1", "https://cdn.example.com/a/photo.jpg"))

	if res.IsValid {
		t.Fatal("expected overlay violation")
	}
	if !hasPath(res, "items.prod_1") {
		t.Fatalf("expected violation at items.prod_1, got %v", res.Errors)
	}
}

func TestNewRejectsInvalidOverlaySchema(t *testing.T) {
	_, err := posv2.New(posv2.WithOverlaySchema(schema.ItemProduct, map[string]any{
		"type": 42,
	}))

	if !errors.Is(err, posv2.ErrInvalidOverlaySchema) {
		t.Fatalf("expected ErrInvalidOverlaySchema, got %v", err)
	}
}

func TestValidateImageDimensionsNoImages(t *testing.T) {
	push := catalogWithImage("img_1", "https://cdn.example.com/a/photo.jpg")
	items := push["items"].(map[string]any)
	delete(items, "img_1")

	res := newValidator(t).ValidateImageDimensions(context.Background(), push, imagecheck.Product)

	if !res.IsValid {
		t.Fatalf("expected immediate valid result, got errors: %v", res.Errors)
	}
	if res.RequestType != payload.TypeMenuPush {
		t.Fatalf("expected Menu Push, got %q", res.RequestType)
	}
}

func TestValidateImageDimensionsLogoExcluded(t *testing.T) {
	srv := servePNG(t, 50, 50) // far below any preset minimum
	defer srv.Close()

	push := catalogWithImage("brand_logo_1", srv.URL+"/photo.png")

	res := newValidator(t).ValidateImageDimensions(context.Background(), push, imagecheck.Product)

	if !res.IsValid {
		t.Fatalf("logo item must be excluded from dimension checks, got errors: %v", res.Errors)
	}
}

func TestValidateImageDimensionsConstraintFailure(t *testing.T) {
	srv := servePNG(t, 100, 90)
	defer srv.Close()

	push := catalogWithImage("img_1", srv.URL+"/photo.png")

	res := newValidator(t).ValidateImageDimensions(context.Background(), push, imagecheck.Product)

	if res.IsValid {
		t.Fatal("expected invalid")
	}
	if res.RequestType != payload.TypeMenuPush {
		t.Fatalf("request type must be preserved, got %q", res.RequestType)
	}
	if !hasCode(res.ErrorCodes, "INVALID_IMAGE_DIMENSIONS") {
		t.Fatalf("expected INVALID_IMAGE_DIMENSIONS, got %v", res.ErrorCodes)
	}
	if !hasPath(res, "items.img_1.url") {
		t.Fatalf("expected path items.img_1.url, got %+v", res.DetailedErrors)
	}
}

func TestValidateImageDimensionsFetchFailure(t *testing.T) {
	srv := servePNG(t, 900, 900)
	url := srv.URL + "/photo.png"
	srv.Close() // connection refused from here on

	push := catalogWithImage("img_1", url)

	res := newValidator(t).ValidateImageDimensions(context.Background(), push, imagecheck.Product)

	if res.IsValid {
		t.Fatal("expected invalid")
	}
	if !hasCode(res.ErrorCodes, "IMAGE_VALIDATION_ERROR") {
		t.Fatalf("expected IMAGE_VALIDATION_ERROR, got %v", res.ErrorCodes)
	}
}

func TestValidateImageDimensionsFetchesCDNURL(t *testing.T) {
	srv := servePNG(t, 50, 50)
	defer srv.Close()

	// Extension-less CDN-style path: accepted by the URL shape check,
	// and the explicitly requested pass must still fetch it.
	push := catalogWithImage("img_1", srv.URL+"/image/upload/v1/abcdefgh")

	res := newValidator(t).ValidateImageDimensions(context.Background(), push, imagecheck.Product)

	if res.IsValid {
		t.Fatal("expected dimension failure for extension-less CDN URL")
	}
	if !hasCode(res.ErrorCodes, "INVALID_IMAGE_DIMENSIONS") {
		t.Fatalf("expected INVALID_IMAGE_DIMENSIONS, got %v", res.ErrorCodes)
	}
	if !hasPath(res, "items.img_1.url") {
		t.Fatalf("expected path items.img_1.url, got %+v", res.DetailedErrors)
	}
}

func TestValidateSkipsExtensionlessURL(t *testing.T) {
	srv := servePNG(t, 50, 50)
	url := srv.URL + "/image/upload/v1/abcdefgh"
	srv.Close() // a fetch attempt would surface as a failure

	push := catalogWithImage("img_1", url)

	// The auto-detection trigger requires a recognized extension, so no
	// fetch happens and the structural result stands.
	res := newValidator(t).Validate(context.Background(), push)

	if !res.IsValid {
		t.Fatalf("expected valid result without a fetch, got errors: %v", res.Errors)
	}
	if res.RequestType != payload.TypeMenuPush {
		t.Fatalf("expected Menu Push, got %q", res.RequestType)
	}
}

func TestValidateImageDimensionsPassingImage(t *testing.T) {
	srv := servePNG(t, 900, 850)
	defer srv.Close()

	push := catalogWithImage("img_1", srv.URL+"/photo.png")

	res := newValidator(t).ValidateImageDimensions(context.Background(), push, imagecheck.Product)

	if !res.IsValid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
}

func TestValidateImageDimensionsNonMenuPush(t *testing.T) {
	res := newValidator(t).ValidateImageDimensions(context.Background(), validOrder(), imagecheck.Product)

	if !res.IsValid {
		t.Fatalf("expected structural result unchanged, got errors: %v", res.Errors)
	}
	if res.RequestType != payload.TypeOrder {
		t.Fatalf("expected Order Payload, got %q", res.RequestType)
	}
}

func TestValidateWithPresetUnknown(t *testing.T) {
	_, err := newValidator(t).ValidateWithPreset(context.Background(), validOrder(), "gigantic")

	if !errors.Is(err, posv2.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestValidateWithPreset(t *testing.T) {
	srv := servePNG(t, 250, 250)
	defer srv.Close()

	push := catalogWithImage("img_1", srv.URL+"/photo.png")

	res, err := newValidator(t).ValidateWithPreset(context.Background(), push, "thumbnail")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !res.IsValid {
		t.Fatalf("expected valid under thumbnail preset, got errors: %v", res.Errors)
	}
}

func hasCode(codes []string, want string) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}

func hasPath(res *result.ValidationResult, want string) bool {
	for _, d := range res.DetailedErrors {
		if d.Path == want {
			return true
		}
	}
	return false
}

// Package enrich maps raw structural violations to stable error codes
// and generated remediation guidance, using path-based and
// wildcard-based lookup.
package enrich

import (
	"sort"
	"strings"

	"github.com/NetRider88/POSV2/payload"
	"github.com/NetRider88/POSV2/schema"
)

// Stable error codes. These strings form part of the contract with
// consumers and must not change.
const (
	CodeMissingItems         = "MISSING_ITEMS"
	CodeMissingTitle         = "MISSING_TITLE"
	CodeInvalidMenuType      = "INVALID_MENU_TYPE"
	CodeMissingProducts      = "MISSING_PRODUCTS"
	CodeInvalidActiveStatus  = "INVALID_ACTIVE_STATUS"
	CodeInvalidImageURL      = "INVALID_IMAGE_URL"
	CodeMissingOrderID       = "MISSING_ORDER_ID"
	CodeMissingCustomerName  = "MISSING_CUSTOMER_NAME"
	CodeMissingCustomerPhone = "MISSING_CUSTOMER_PHONE"
	CodeMissingOrderItems    = "MISSING_ORDER_ITEMS"
	CodeInvalidItemID        = "INVALID_ITEM_ID"
	CodeInvalidItemQuantity  = "INVALID_ITEM_QUANTITY"
	CodeInvalidItemPrice     = "INVALID_ITEM_PRICE"
	CodeInvalidTotalAmount   = "INVALID_TOTAL_AMOUNT"
	CodeInvalidCurrencyCode  = "INVALID_CURRENCY_CODE"
	CodeInvalidImageDims     = "INVALID_IMAGE_DIMENSIONS"
	CodeImageValidationError = "IMAGE_VALIDATION_ERROR"
	CodeUnknownError         = "UNKNOWN_ERROR"
	CodeUnknownRequestType   = "UNKNOWN_REQUEST_TYPE"
)

// menuPushCodes maps violation paths to codes for catalog pushes.
// Plain keys match the full dotted path or the final segment; keys
// containing "*" are matched as a segment window, with "*" standing for
// any array or map index.
var menuPushCodes = map[string]string{
	"items":                 CodeMissingItems,
	"title":                 CodeMissingTitle,
	"menuType":              CodeInvalidMenuType,
	"products":              CodeMissingProducts,
	"active":                CodeInvalidActiveStatus,
	"url":                   CodeInvalidImageURL,
	"price":                 CodeInvalidItemPrice,
	"id":                    CodeInvalidItemID,
	"items.*.title.default": CodeMissingTitle,
	"items.*.menuType":      CodeInvalidMenuType,
	"items.*.products":      CodeMissingProducts,
	"items.*.active":        CodeInvalidActiveStatus,
	"items.*.url":           CodeInvalidImageURL,
	"items.*.price":         CodeInvalidItemPrice,
}

// orderCodes maps violation paths to codes for order payloads.
var orderCodes = map[string]string{
	"orderId":               CodeMissingOrderID,
	"customerDetails.name":  CodeMissingCustomerName,
	"customerDetails.phone": CodeMissingCustomerPhone,
	"name":                  CodeMissingCustomerName,
	"phone":                 CodeMissingCustomerPhone,
	"items":                 CodeMissingOrderItems,
	"id":                    CodeInvalidItemID,
	"quantity":              CodeInvalidItemQuantity,
	"price":                 CodeInvalidItemPrice,
	"totalAmount":           CodeInvalidTotalAmount,
	"currency":              CodeInvalidCurrencyCode,
	"items.*.id":            CodeInvalidItemID,
	"items.*.quantity":      CodeInvalidItemQuantity,
	"items.*.price":         CodeInvalidItemPrice,
}

// codeTable selects the lookup table for a request type.
func codeTable(rt payload.RequestType) map[string]string {
	switch rt {
	case payload.TypeMenuPush:
		return menuPushCodes
	case payload.TypeOrder:
		return orderCodes
	default:
		return nil
	}
}

// CodeFor derives the stable error code for a violation path. Lookup
// order: exact full path, then final path segment, then wildcard keys,
// then CodeUnknownError.
func CodeFor(rt payload.RequestType, path schema.Path) string {
	table := codeTable(rt)
	if table == nil {
		return CodeUnknownError
	}

	if code, ok := table[path.String()]; ok {
		return code
	}
	if code, ok := table[path.Last()]; ok {
		return code
	}

	// Wildcard scan. Keys are visited in sorted order so that lookup is
	// deterministic when several patterns could match.
	for _, key := range wildcardKeys(table) {
		if wildcardMatch(path, key) {
			return table[key]
		}
	}
	return CodeUnknownError
}

// wildcardKeys returns the table's wildcard keys in sorted order.
func wildcardKeys(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		if strings.Contains(k, "*") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// wildcardMatch reports whether path contains the wildcard key as a
// consecutive segment window. "*" matches exactly one segment.
func wildcardMatch(path schema.Path, key string) bool {
	pattern := strings.Split(key, ".")
	if len(pattern) > len(path) {
		return false
	}

	for start := 0; start+len(pattern) <= len(path); start++ {
		matched := true
		for i, seg := range pattern {
			if seg != "*" && seg != path[start+i] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

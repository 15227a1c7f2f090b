package admin

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
)

// productFieldAliases are the only request field names that differ from their
// storage column.
var productFieldAliases = map[string]string{
	"originalPrice": "originalprice",
	"soldCount":     "sold_count",
}

type columnKind int

const (
	kindText columnKind = iota
	kindRequiredText
	kindMoney
	kindCount
)

var productColumnKinds = map[string]columnKind{
	"name":          kindRequiredText,
	"description":   kindText,
	"category":      kindText,
	"image":         kindText,
	"price":         kindMoney,
	"originalprice": kindMoney,
	"stock":         kindCount,
	"sold_count":    kindCount,
}

// maxCount matches the INTEGER stock and sold_count columns.
const maxCount = math.MaxInt32

// BuildProductPayload translates request field names to storage columns and
// checks every value against its column. Unknown columns and empty updates
// are rejected. When a request sends both an alias and its column, the alias
// wins.
func BuildProductPayload(updates map[string]any) (map[string]any, error) {
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "updates must contain at least one field")
	}

	payload := make(map[string]any, len(updates))
	problems := make(map[string]string)
	for _, aliases := range []bool{false, true} {
		for field, value := range updates {
			column, isAlias := productFieldAliases[field]
			if isAlias != aliases {
				continue
			}
			if !isAlias {
				column = field
			}
			if _, ok := models.ProductColumns[column]; !ok {
				problems[field] = "is not an updatable product field"
				continue
			}
			coerced, reason := coerceColumn(productColumnKinds[column], value)
			if reason != "" {
				problems[field] = reason
				continue
			}
			payload[column] = coerced
		}
	}

	if len(problems) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product update: "+describe(problems)).
			WithDetails(problems)
	}
	return payload, nil
}

func coerceColumn(kind columnKind, value any) (any, string) {
	if value == nil {
		if kind == kindRequiredText {
			return nil, "must not be null"
		}
		return nil, ""
	}

	switch kind {
	case kindText, kindRequiredText:
		s, ok := value.(string)
		if !ok {
			return nil, "must be a string"
		}
		return s, ""
	case kindMoney:
		f, ok := asFloat(value)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, "must be a number"
		}
		return f, ""
	case kindCount:
		f, ok := asFloat(value)
		if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, "must be a whole number"
		}
		if f < 0 || f > maxCount {
			return nil, fmt.Sprintf("must be between 0 and %d", maxCount)
		}
		return int64(f), ""
	}
	return nil, "unsupported field"
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func describe(problems map[string]string) string {
	fields := make([]string, 0, len(problems))
	for field, reason := range problems {
		fields = append(fields, field+" "+reason)
	}
	sort.Strings(fields)
	return strings.Join(fields, "; ")
}

// BuildStatusPayload stamps the status change time. note is written only when
// it carries text.
func BuildStatusPayload(status, note string, now time.Time) map[string]any {
	payload := map[string]any{
		"status":             status,
		"last_status_change": now.UTC(),
	}
	if strings.TrimSpace(note) != "" {
		payload["note"] = note
	}
	return payload
}

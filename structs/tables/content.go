package tables

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// PageContent holds the editable JSON document behind one storefront page.
type PageContent struct {
	bun.BaseModel `bun:"table:page_contents,alias:pc"`

	Key       string          `bun:"key,pk" json:"key"`
	Content   json.RawMessage `bun:"content,type:jsonb,notnull" json:"content"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

package mongoclient

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/x-xyz/goauction/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableAuction struct {
		Title       *string          `bson:"title,omitempty"`
		Description *string          `bson:"description,omitempty"`
		Price       *decimal.Decimal `bson:"price,omitempty"`
		EndDate     *time.Time       `bson:"endDate,omitempty"`
		Category    string           `bson:"category"`
		Notes       string           `bson:"notes"`
	}

	end := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	patchable := &PatchableAuction{
		Title:   ptr.String(""),
		Price:   ptr.Decimal(decimal.RequireFromString("12.50")),
		EndDate: &end,
		Notes:   "fragile",
	}

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"title":   "",
			"price":   decimal.RequireFromString("12.50"),
			"endDate": end,
			// category is empty, so ignore
			"notes": "fragile",
		},
		updater,
	)
}

func TestDecimalCodec(t *testing.T) {
	type doc struct {
		Amount decimal.Decimal  `bson:"amount"`
		Opt    *decimal.Decimal `bson:"opt,omitempty"`
	}

	reg := Registry()
	in := doc{Amount: decimal.RequireFromString("105.25"), Opt: ptr.Decimal(decimal.RequireFromString("0.01"))}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)
	assert.Equal(t, bsontype.Decimal128, bson.Raw(raw).Lookup("amount").Type)

	var out doc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, in.Amount.Equal(out.Amount))
	require.NotNil(t, out.Opt)
	assert.True(t, in.Opt.Equal(*out.Opt))

	legacy, err := bson.Marshal(bson.M{"amount": 100.5})
	require.NoError(t, err)
	var fromDouble doc
	require.NoError(t, bson.UnmarshalWithRegistry(reg, legacy, &fromDouble))
	assert.True(t, decimal.RequireFromString("100.5").Equal(fromDouble.Amount))
	assert.Nil(t, fromDouble.Opt)
}

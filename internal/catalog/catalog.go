// Package catalog builds a populated store from a JSON catalog document.
// The same document format is produced by the catalog-import tool and
// shipped embedded as the default inventory.
package catalog

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/retail-store-challenge/internal/domain/product"
	"github.com/xenking/retail-store-challenge/internal/domain/promotion"
	"github.com/xenking/retail-store-challenge/internal/domain/store"
)

// Product kinds accepted in catalog documents.
const (
	KindStandard   = "standard"
	KindNonStocked = "non_stocked"
	KindLimited    = "limited"
)

// Promotion types accepted in catalog documents.
const (
	PromotionPercent      = "percent"
	PromotionSecondHalf   = "second_half_price"
	PromotionThirdOneFree = "third_one_free"
)

// PromotionSpec describes a promotion attached to a catalog product.
type PromotionSpec struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Percent decimal.Decimal `json:"percent,omitempty"`
}

// ProductSpec describes one product entry of a catalog document.
type ProductSpec struct {
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity,omitempty"`
	Max       int             `json:"max_per_order,omitempty"`
	Promotion *PromotionSpec  `json:"promotion,omitempty"`
}

// Parse decodes a catalog document into its product specs.
func Parse(data []byte) ([]ProductSpec, error) {
	var specs []ProductSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, errors.Wrap(err, "parse catalog JSON")
	}
	return specs, nil
}

// Load parses a catalog document and builds a store from it.
func Load(data []byte) (*store.Store, error) {
	specs, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(specs)
}

// Build constructs products from the given specs, attaches their
// promotions, and returns a store holding them in document order.
func Build(specs []ProductSpec) (*store.Store, error) {
	products := make([]product.Product, 0, len(specs))
	for _, spec := range specs {
		p, err := buildProduct(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "product %q", spec.Name)
		}
		products = append(products, p)
	}
	return store.New(products...), nil
}

func buildProduct(spec ProductSpec) (product.Product, error) {
	var (
		p   product.Product
		err error
	)
	switch spec.Kind {
	case KindStandard, "":
		p, err = product.NewStandard(spec.Name, spec.Price, spec.Quantity)
	case KindNonStocked:
		p, err = product.NewNonStocked(spec.Name, spec.Price)
	case KindLimited:
		p, err = product.NewLimited(spec.Name, spec.Price, spec.Quantity, spec.Max)
	default:
		return nil, errors.Errorf("unsupported product kind: %q", spec.Kind)
	}
	if err != nil {
		return nil, err
	}

	if spec.Promotion != nil {
		promo, err := buildPromotion(*spec.Promotion)
		if err != nil {
			return nil, err
		}
		p.SetPromotion(promo)
	}
	return p, nil
}

func buildPromotion(spec PromotionSpec) (promotion.Promotion, error) {
	switch spec.Type {
	case PromotionPercent:
		return promotion.NewPercentDiscount(spec.Name, spec.Percent), nil
	case PromotionSecondHalf:
		return promotion.NewSecondHalfPrice(spec.Name), nil
	case PromotionThirdOneFree:
		return promotion.NewThirdOneFree(spec.Name), nil
	default:
		return nil, errors.Errorf("unsupported promotion type: %q", spec.Type)
	}
}

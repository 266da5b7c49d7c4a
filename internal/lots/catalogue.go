package lots

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadCatalogue читает каталог лотов из JSON-массива.
// Лоты без кода, площади или цены отклоняются
func ReadCatalogue(r io.Reader) ([]Lot, error) {
	var parsed []Lot
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}
	for i, lot := range parsed {
		switch {
		case NormalizeCode(lot.Code) == "":
			return nil, fmt.Errorf("lot #%d: empty code", i)
		case lot.AreaM2 <= 0:
			return nil, fmt.Errorf("lot %s: area must be positive", lot.Code)
		case lot.PriceRub <= 0:
			return nil, fmt.Errorf("lot %s: price must be positive", lot.Code)
		}
	}
	return parsed, nil
}

package lots

import (
	"errors"
	"fmt"
)

// ErrLotNotFound возвращается, когда лот не найден ни по коду, ни по площади
var ErrLotNotFound = errors.New("lot not found")

func notFoundCode(code string) error {
	return fmt.Errorf("%w: code %q", ErrLotNotFound, code)
}

func notFoundArea(area float64) error {
	return fmt.Errorf("%w: area %.1f", ErrLotNotFound, area)
}

package ai

import (
	"errors"
	"fmt"

	"github.com/j0lvera/ratebot/internal/upstream"
)

// FormatCompletion prefixes the reply with the model that produced it.
func FormatCompletion(c Completion) string {
	model := c.Model
	if model == "" {
		model = "неизвестно"
	}
	return fmt.Sprintf("(GPT: %s)\n\n%s", model, c.Content)
}

// FormatError keeps connection failures apart from errors the API reported.
func FormatError(model string, err error) string {
	var upErr *upstream.Error
	if !errors.As(err, &upErr) {
		return fmt.Sprintf("❌ Ошибка (модель %s): %v", model, err)
	}

	switch {
	case upErr.Kind == upstream.Transport && upErr.Timeout:
		return fmt.Sprintf("❌ %s не ответил вовремя (модель %s)", upErr.Provider, model)
	case upErr.Kind == upstream.Transport:
		return fmt.Sprintf("❌ Нет связи с %s (модель %s): %v", upErr.Provider, model, upErr.Err)
	default:
		return fmt.Sprintf("❌ Ошибка API %s (модель %s, статус %d): %s", upErr.Provider, model, upErr.Status, upErr.Message)
	}
}

package models

import "encoding/json"

// Optional registra se um campo veio no corpo da requisição.
// Usado nos updates parciais: ausente não altera, null limpa, valor substitui.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// Some cria um Optional preenchido (útil em testes e chamadas internas).
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// HasValue indica que o campo veio com um valor não nulo.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

// Ptr converte para ponteiro: nil quando veio null.
func (o Optional[T]) Ptr() *T {
	if !o.HasValue() {
		return nil
	}
	v := o.Value
	return &v
}

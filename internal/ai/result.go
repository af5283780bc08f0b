package ai

import "errors"

var (
	ErrNoCredential  = errors.New("ai api key is not configured")
	ErrEmptyResponse = errors.New("ai response is empty")
)

// Result хранит исход обращения к модели: текст либо причину ошибки.
type Result struct {
	text string
	err  error
}

// Ok оборачивает успешный текст ответа.
func Ok(text string) Result {
	return Result{text: text}
}

// Err оборачивает причину неудачи. nil заменяется на ErrEmptyResponse.
func Err(reason error) Result {
	if reason == nil {
		reason = ErrEmptyResponse
	}

	return Result{err: reason}
}

func (r Result) IsOk() bool {
	return r.err == nil
}

func (r Result) Text() string {
	return r.text
}

func (r Result) Err() error {
	return r.err
}

// TextOr возвращает текст ответа или fallback при ошибке.
func (r Result) TextOr(fallback string) string {
	if r.err != nil {
		return fallback
	}

	return r.text
}

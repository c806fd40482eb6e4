package mailer

import "errors"

var (
	// ErrInvalidRecipient возвращается для некорректного адреса получателя
	ErrInvalidRecipient = errors.New("mailer: invalid recipient")

	// ErrSend возвращается, когда письмо не удалось отправить
	ErrSend = errors.New("mailer: failed to send message")
)

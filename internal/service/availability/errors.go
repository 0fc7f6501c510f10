package availability

import "errors"

var (
	// ErrInvalidArgument возвращается при некорректных датах или границах окна
	ErrInvalidArgument = errors.New("availability: invalid argument")

	// ErrStorage возвращается при ошибке чтения из хранилища
	ErrStorage = errors.New("availability: storage failure")
)

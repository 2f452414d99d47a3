package usecase

import "fmt"

var ErrPersistence = fmt.Errorf("chat use case persistence error")

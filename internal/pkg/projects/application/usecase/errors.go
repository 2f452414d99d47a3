package usecase

import "fmt"

var ErrPersistence = fmt.Errorf("projects use case persistence error")

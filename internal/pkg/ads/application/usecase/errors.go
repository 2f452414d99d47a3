package usecase

import "fmt"

var ErrPersistence = fmt.Errorf("ads use case persistence error")

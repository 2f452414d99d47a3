package usecase

import "fmt"

var ErrPersistence = fmt.Errorf("reviews use case persistence error")

package usecase

import "fmt"

var ErrPersistence = fmt.Errorf("adminpanel use case persistence error")

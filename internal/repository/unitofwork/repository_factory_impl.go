package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &RepositoryFactoryImpl{
		db: db,
	}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(_ context.Context) UnitOfWork {
	// The unit of work is short lived, one per request. The context is
	// passed again on Begin and on each repository call.
	return NewUnitOfWork(f.db)
}

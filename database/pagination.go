package database

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"gorm.io/gorm"
)

type HandleOrderFieldNotFound func(tx *gorm.DB, sortOption *SortOption) (*gorm.DB, error)

type ModelWithViewMapper[M any] interface{}

// PModelWithViewMapper amarra o model (ou viewmodel) ao tipo que vai pro JSON de resposta
type PModelWithViewMapper[M any, D ModelWithViewMapper[M]] interface {
	*D
	ConvertToView(tx *gorm.DB) (*M, error)
}

func clampPagination(pagination *PaginationData) uint64 {
	limit := pagination.Limit
	if limit > 1000 {
		limit = 1000
	} else if limit < 1 {
		limit = 50
	}
	if pagination.Page == 0 {
		pagination.Page = 1
	}
	return limit
}

func PreparePaginatedQuery(ctx context.Context, tx *gorm.DB, pagination *PaginationData, dest any, applyLimitOffset bool, handleExtra HandleOrderFieldNotFound) (*gorm.DB, error) {
	if tx == nil || pagination == nil || dest == nil {
		return nil, errors.New("nil argument")
	}

	destType := reflect.TypeOf(dest)
	for destType.Kind() == reflect.Ptr || destType.Kind() == reflect.Slice {
		destType = destType.Elem()
	}

	if destType.Kind() != reflect.Struct {
		return nil, errors.New("dest is not a struct")
	}

	tableName := tx.NamingStrategy.TableName(destType.Name())

	for _, sortOption := range pagination.SortOptions {

		if sortOption.Sort == "" {
			continue
		}

		// garantir que a primeira letra é maiúscula
		s := strings.ToUpper(sortOption.Sort[:1]) + sortOption.Sort[1:]

		// verifica se o campo existe na struct
		_, ok := destType.FieldByName(s)

		if !ok {
			if handleExtra != nil {
				var err error
				tx, err = handleExtra(tx, sortOption)
				if err != nil {
					return nil, err
				}
			}
			continue
		}

		dbName := tx.NamingStrategy.ColumnName(tableName, s)

		if dbName != "" {
			var order string
			if sortOption.Order == SortOrderDescending {
				order = " DESC"
			}
			tx = tx.Order(dbName + order)
		}
	}

	if applyLimitOffset {
		limit := clampPagination(pagination)

		if limit > 0 {
			tx = tx.Limit(int(limit))
			if pagination.Page > 1 {
				offset := (pagination.Page - 1) * limit
				tx = tx.Offset(int(offset))
			}
		}
	}

	return tx, nil
}

// GetPaginatedResult monta a resposta paginada convertendo cada model com ConvertToView.
// L precisa ter os campos Metadata e Data (preenchidos por reflection).
func GetPaginatedResult[M any, L any, D ModelWithViewMapper[M], PD PModelWithViewMapper[M, D]](ctx context.Context, tx *gorm.DB, pagination *PaginationData, dest D, handleExtra HandleOrderFieldNotFound) (*L, error) {
	if pagination == nil {
		pagination = &PaginationData{
			Limit: 10,
		}
	}

	tx, err := PreparePaginatedQuery(ctx, tx, pagination, dest, false, handleExtra)
	if err != nil {
		return nil, err
	}

	limit := clampPagination(pagination)

	response := new(L)

	responseMetadata := &PaginatedResponseMetadata{}
	responseMetadata.Limit = limit
	responseMetadata.Page = pagination.Page

	var count int64

	if tx.Statement.Model == nil {
		tx = tx.Model(dest)
	}

	r := tx.Session(&gorm.Session{}).Count(&count)
	if r.Error != nil {
		return nil, r.Error
	}

	if count == 0 {
		// não tem nada pra retornar
		// nem precisa fazer outra query

		return response, nil
	}

	responseMetadata.Total = uint64(count)

	reflect.ValueOf(response).Elem().FieldByName("Metadata").Set(reflect.ValueOf(responseMetadata))

	destType := reflect.TypeOf(dest)
	for destType.Kind() == reflect.Ptr || destType.Kind() == reflect.Slice {
		destType = destType.Elem()
	}

	sliceType := reflect.SliceOf(reflect.PointerTo(destType))
	sliceInterface := reflect.New(sliceType).Interface()

	tx = tx.Limit(int(limit))
	if pagination.Page > 1 {
		offset := (pagination.Page - 1) * limit
		tx = tx.Offset(int(offset))
	}

	r = tx.Find(sliceInterface)
	if r.Error != nil {
		return nil, r.Error
	}

	dataSlice := sliceInterface.(*[]PD)
	data := make([]*M, 0, len(*dataSlice))
	for _, result := range *dataSlice {
		d, err := result.ConvertToView(tx.Session(&gorm.Session{
			NewDB: true,
		}))
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}

	reflect.ValueOf(response).Elem().FieldByName("Data").Set(reflect.ValueOf(data))

	return response, nil
}

// GetPaginatedResultWithViewModel faz o mesmo que GetPaginatedResult, mas projetando
// o resultado (incluindo joins já preparados na tx) em um viewmodel intermediário.
func GetPaginatedResultWithViewModel[M any, L any, D ModelWithViewMapper[M], PD PModelWithViewMapper[M, D]](ctx context.Context, tx *gorm.DB, pagination *PaginationData, dest any, viewModel D, handleExtra HandleOrderFieldNotFound) (*L, error) {
	if pagination == nil {
		pagination = &PaginationData{
			Limit: 10,
		}
	}

	tx, err := PreparePaginatedQuery(ctx, tx, pagination, dest, false, handleExtra)
	if err != nil {
		return nil, err
	}

	if tx.Statement.Model == nil {
		tx = tx.Model(dest)
	}

	tx, err = PrepareForViewModel(tx, viewModel)
	if err != nil {
		return nil, err
	}

	limit := clampPagination(pagination)

	response := new(L)

	responseMetadata := &PaginatedResponseMetadata{}
	responseMetadata.Limit = limit
	responseMetadata.Page = pagination.Page

	var count int64
	r := tx.Model(dest).Session(&gorm.Session{}).Count(&count)
	if r.Error != nil {
		return nil, r.Error
	}

	if count == 0 {
		// não tem nada pra retornar
		// nem precisa fazer outra query

		return response, nil
	}

	responseMetadata.Total = uint64(count)

	reflect.ValueOf(response).Elem().FieldByName("Metadata").Set(reflect.ValueOf(responseMetadata))

	destType := reflect.TypeOf(dest)
	for destType.Kind() == reflect.Ptr || destType.Kind() == reflect.Slice {
		destType = destType.Elem()
	}
	viewModelType := reflect.TypeOf(viewModel)
	for viewModelType.Kind() == reflect.Ptr || viewModelType.Kind() == reflect.Slice {
		viewModelType = viewModelType.Elem()
	}

	destInterface := reflect.New(destType).Interface()

	sliceType := reflect.SliceOf(reflect.PointerTo(viewModelType))
	sliceInterface := reflect.New(sliceType).Interface()

	if limit > 0 {
		tx = tx.Limit(int(limit))
		if pagination.Page > 1 {
			offset := (pagination.Page - 1) * limit
			tx = tx.Offset(int(offset))
		}
	}

	r = tx.Model(destInterface).Scan(sliceInterface)
	if r.Error != nil {
		return nil, r.Error
	}

	dataSlice := sliceInterface.(*[]PD)
	data := make([]*M, 0, len(*dataSlice))
	for _, result := range *dataSlice {
		d, err := result.ConvertToView(tx.Session(&gorm.Session{
			NewDB: true,
		}))
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}

	reflect.ValueOf(response).Elem().FieldByName("Data").Set(reflect.ValueOf(data))

	return response, nil
}

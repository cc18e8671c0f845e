package database

import (
	"errors"
	"reflect"
	"strconv"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type (
	joinedTables  map[string]struct{}
	joinedSchemas []*schema.Schema
)

const (
	alreadyJoinedKey string = "join-already-joined"
	joinedSchemasKey string = "join-joined-schemas"
)

var (
	deletedAtType reflect.Type

	cacheStore = &sync.Map{}
)

func init() {
	deletedAtType = reflect.TypeOf(gorm.DeletedAt{})
}

func Join(tx *gorm.DB, modelFromJoin, modelToJoin interface{}, propertyFromSource, propertyFromDest, extraJoinFilters string) (*gorm.DB, error) {
	return join("", tx, modelFromJoin, modelToJoin, propertyFromSource, propertyFromDest, extraJoinFilters)
}

func LeftJoin(tx *gorm.DB, modelFromJoin, modelToJoin interface{}, propertyFromSource, propertyFromDest, extraJoinFilters string) (*gorm.DB, error) {
	return join("LEFT", tx, modelFromJoin, modelToJoin, propertyFromSource, propertyFromDest, extraJoinFilters)
}

func structTypeOf(model interface{}) (reflect.Type, error) {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.New("model is not a struct")
	}
	return t, nil
}

// tx (with model), model to join, property from source, property from dest
// modelFromJoin must be the same as tx.Statement.Model or tx.Statement.Model == nil or modelFromJoin was already joined with this function
func join(joinType string, tx *gorm.DB, modelFromJoin, modelToJoin interface{}, propertyFromSource, propertyFromDest, extraJoinFilters string) (*gorm.DB, error) {
	var alreadyJoined joinedTables
	if i, ok := tx.Get(alreadyJoinedKey); ok {
		alreadyJoined, _ = i.(joinedTables)
	}
	if alreadyJoined == nil {
		alreadyJoined = make(joinedTables)
	}

	var joinedSchemasArr joinedSchemas
	if i, ok := tx.Get(joinedSchemasKey); ok {
		joinedSchemasArr, _ = i.(joinedSchemas)
	}
	if joinedSchemasArr == nil {
		joinedSchemasArr = make(joinedSchemas, 0, 2)
	}

	modelFromJoinType, err := structTypeOf(modelFromJoin)
	if err != nil {
		return nil, err
	}

	if _, err := structTypeOf(modelToJoin); err != nil {
		return nil, err
	}

	modelFromJoinSchema, err := schema.Parse(modelFromJoin, cacheStore, tx.NamingStrategy)
	if err != nil {
		return nil, err
	}

	modelToJoinSchema, err := schema.Parse(modelToJoin, cacheStore, tx.NamingStrategy)
	if err != nil {
		return nil, err
	}

	if tx.Statement.Model != nil {
		modelType, err := structTypeOf(tx.Statement.Model)
		if err != nil {
			return nil, err
		}

		if modelFromJoinType != modelType {
			if _, ok := alreadyJoined[modelFromJoinSchema.Table]; !ok {
				return nil, errors.New("model to join from is not valid")
			}
		}
	} else {
		modelFromJoinPtr := reflect.New(modelFromJoinType).Interface()
		tx = tx.Model(modelFromJoinPtr)
	}

	if _, ok := alreadyJoined[modelFromJoinSchema.Table]; !ok {
		alreadyJoined[modelFromJoinSchema.Table] = struct{}{}
		joinedSchemasArr = append(joinedSchemasArr, modelFromJoinSchema)
	}

	if _, ok := alreadyJoined[modelToJoinSchema.Table]; ok {
		// sem suporte a joins repetidos da mesma tabela, isso envolveria aliases
		return nil, errors.New("model already joined")
	}

	columnFromJoin := propertyFromSource
	if f := modelFromJoinSchema.LookUpField(propertyFromSource); f != nil {
		columnFromJoin = f.DBName
	}
	// se não encontrar a propriedade, usa o valor direto (permite coluna ou expressão)
	// user input nunca chega aqui, então não rola SQL injection por esse caminho

	columnToJoin := propertyFromDest
	if f := modelToJoinSchema.LookUpField(propertyFromDest); f != nil {
		columnToJoin = f.DBName
	}

	joinString := joinType + " JOIN " + modelToJoinSchema.Table + " ON " + modelFromJoinSchema.Table + "." + columnFromJoin + " = " + modelToJoinSchema.Table + "." + columnToJoin

	if f := getFieldByIndirectType(modelToJoinSchema, deletedAtType); f != nil {
		joinString = joinString + " AND " + modelToJoinSchema.Table + "." + f.DBName + " IS NULL"
	}

	if extraJoinFilters != "" {
		joinString = joinString + " AND " + extraJoinFilters
	}

	tx = tx.Joins(joinString)

	alreadyJoined[modelToJoinSchema.Table] = struct{}{}
	joinedSchemasArr = append(joinedSchemasArr, modelToJoinSchema)

	tx = tx.Set(alreadyJoinedKey, alreadyJoined)
	tx = tx.Set(joinedSchemasKey, joinedSchemasArr)

	return tx, nil
}

// PrepareForViewModel monta o SELECT renomeando as colunas das tabelas já joinadas
// para os nomes esperados pelo viewmodel
func PrepareForViewModel(tx *gorm.DB, viewModel interface{}) (*gorm.DB, error) {
	if tx.Statement.Model == nil {
		return nil, errors.New("tx model cannot be nil")
	}

	viewModelType, err := structTypeOf(viewModel)
	if err != nil {
		return nil, err
	}

	viewModelTableName := tx.NamingStrategy.TableName(viewModelType.Name())

	var selectString string

	if i, ok := tx.Get(joinedSchemasKey); ok {
		joinedSchemasArr, ok := i.(joinedSchemas)
		if ok && len(joinedSchemasArr) > 0 {
			fieldsAdded := make(map[string]int)

			for _, tableSchema := range joinedSchemasArr {
				for _, f := range tableSchema.Fields {
					if f.DBName == "" {
						continue
					}

					originalName := f.DBName
					toName := tx.NamingStrategy.ColumnName(viewModelTableName, f.Name)

					i := fieldsAdded[f.Name]
					i += 1
					fieldsAdded[f.Name] = i
					if i != 1 {
						// nomes repetidos entre as tabelas ganham sufixo numérico
						toName = toName + strconv.FormatInt(int64(i), 10)
					}

					selectString = selectString + tableSchema.Table + "." + originalName + " AS " + toName + ", "
				}
			}

			selectString = selectString[:len(selectString)-2]

			tx = tx.Select(selectString)
			return tx, nil
		}
	}

	// sem joins preparados, projeta somente as colunas do model do statement
	if tx.Statement.Schema == nil {
		err := tx.Statement.Parse(tx.Statement.Model)
		if err != nil {
			return nil, err
		}
	}

	modelTableName := tx.Statement.Schema.Table

	for _, f := range tx.Statement.Schema.Fields {
		if f.DBName == "" {
			continue
		}

		selectString = selectString + modelTableName + "." + f.DBName + " AS " + tx.NamingStrategy.ColumnName(viewModelTableName, f.Name) + ", "
	}

	selectString = selectString[:len(selectString)-2]

	tx = tx.Select(selectString)
	return tx, nil
}

func getFieldByIndirectType(t *schema.Schema, indirectType reflect.Type) *schema.Field {
	for _, f := range t.Fields {
		if f.IndirectFieldType == indirectType {
			return f
		}
	}
	return nil
}

package database

import (
	"errors"
	"reflect"
	"strings"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rawValue struct {
	value string
}

type HandleFilterFieldNotFound func(tx *gorm.DB, filter *FilterData) (*gorm.DB, clause.Expression, error)

func PrepareWithFilters(tx *gorm.DB, filters []*FilterData, dest interface{}, handleExtra HandleFilterFieldNotFound) (*gorm.DB, error) {
	if filters == nil {
		return tx, nil
	}

	tx2, conds, err := BuildFilterExprs(tx, filters, dest, handleExtra)
	if err != nil {
		return nil, err
	}
	if len(conds) > 0 {
		if len(conds) == 1 {
			if orConds, ok := conds[0].(clause.OrConditions); ok && len(orConds.Exprs) == 1 {
				conds = []clause.Expression{
					orConds.Exprs[0],
				}
			}
		}

		tx2.Statement.AddClause(clause.Where{Exprs: []clause.Expression{clause.And(conds...)}})
	}
	return tx2, nil
}

func BuildFilterExprs(tx *gorm.DB, filters []*FilterData, dest interface{}, handleExtra HandleFilterFieldNotFound) (*gorm.DB, []clause.Expression, error) {
	if tx == nil || filters == nil || dest == nil {
		return nil, nil, errors.New("nil argument")
	}

	destType := reflect.TypeOf(dest)
	for destType.Kind() == reflect.Ptr || destType.Kind() == reflect.Slice {
		destType = destType.Elem()
	}

	if destType.Kind() != reflect.Struct {
		return nil, nil, errors.New("dest is not a struct")
	}

	tableName := tx.NamingStrategy.TableName(destType.Name())

	var err error

	var conds []clause.Expression

	for _, filterData := range filters {
		// checar se o campo do filtro existe no model
		// se não existir, chamar a função passada por parâmetro

		switch {
		case filterData.Simple != nil:
			f := filterData.Simple
			var expr clause.Expression

			if f.FilterKey == "" {
				continue
			}
			// garantir que a primeira letra é maiúscula (espera-se PascalCase, mas o frontend manda tudo como camelCase)
			s := strings.ToUpper(f.FilterKey[:1]) + f.FilterKey[1:]

			_, ok := destType.FieldByName(s)
			if !ok {
				if handleExtra == nil {
					continue
				}

				tx, expr, err = handleExtra(tx, filterData)
				if err != nil {
					return nil, nil, err
				}
			} else {

				dbName := tx.NamingStrategy.ColumnName(tableName, s)

				var underlyingExpr clause.Expression
				if f.IsDynamic {
					underlyingExpr, err = getDynamicFilterValue(tx, dbName, f)
					if err != nil {
						return nil, nil, err
					}
				} else {
					underlyingExpr, ok = BuildUnderlyingFilterClause(tx.Statement, dbName, f.Value, f.Operator)
					if !ok {
						return nil, nil, errors.New("underlyingExpr not ok")
					}
				}

				if filterData.IsOr {
					expr = clause.Or(underlyingExpr)
				} else {
					expr = underlyingExpr
				}
			}

			if expr != nil {
				conds = append(conds, expr)
			}
		case filterData.In != nil:
			f := filterData.In
			var expr clause.Expression

			if f.FilterKey == "" {
				continue
			}
			s := strings.ToUpper(f.FilterKey[:1]) + f.FilterKey[1:]

			_, ok := destType.FieldByName(s)
			if !ok {
				if handleExtra == nil {
					continue
				}

				tx, expr, err = handleExtra(tx, filterData)
				if err != nil {
					return nil, nil, err
				}
			} else {
				dbName := tx.NamingStrategy.ColumnName(tableName, s)

				var underlyingExprs []clause.Expression
				if f.IsNot {
					underlyingExprs = tx.Statement.BuildCondition(dbName+" NOT IN ?", f.Value)
				} else {
					underlyingExprs = tx.Statement.BuildCondition(dbName+" IN ?", f.Value)
				}

				if underlyingExprs == nil {
					return nil, nil, errors.New("underlyingExprs nil")
				}

				var underlyingExpr clause.Expression

				if len(underlyingExprs) > 1 {
					underlyingExpr = clause.And(underlyingExprs...)
				} else if len(underlyingExprs) == 1 {
					underlyingExpr = underlyingExprs[0]
				}

				if underlyingExpr == nil {
					return nil, nil, errors.New("underlyingExpr nil")
				}

				if filterData.IsOr {
					expr = clause.Or(underlyingExpr)
				} else {
					expr = underlyingExpr
				}
			}

			if expr != nil {
				conds = append(conds, expr)
			}
		case filterData.Grouped != nil:
			if filterData.Grouped.Filters == nil {
				// ignora o grupo caso ele não contenha filtros
				continue
			}

			var groupedConds []clause.Expression
			tx, groupedConds, err = BuildFilterExprs(tx, filterData.Grouped.Filters, dest, handleExtra)
			if err != nil {
				return nil, nil, err
			}
			if groupedConds != nil {
				if filterData.IsOr {
					conds = append(conds, clause.Or(clause.And(groupedConds...)))
				} else {
					conds = append(conds, clause.And(groupedConds...))
				}
			}
		}
	}

	return tx, conds, nil
}

func BuildUnderlyingFilterClause(statement *gorm.Statement, dbFieldName string, value interface{}, operator FilterOperator) (clause.Expression, bool) {
	var op string

	if dbFieldName == "" {
		return nil, false
	}

	checkValueEmpty := true
	switch operator {
	case FilterOperatorEqual:
		op = "="
	case FilterOperatorNotEqual:
		op = "<>"
	case FilterOperatorLike:
		op = "LIKE"
	case FilterOperatorLikeInsensitive:
		op = "ILIKE"
	case FilterOperatorIsNull:
		op = "IS NULL"
		value = nil // ensure value is empty
		checkValueEmpty = false
	case FilterOperatorIsNotNull:
		op = "IS NOT NULL"
		value = nil // ensure value is empty
		checkValueEmpty = false
	case FilterOperatorLessThan:
		op = "<"
	case FilterOperatorLessThanEqual:
		op = "<="
	case FilterOperatorGreaterThan:
		op = ">"
	case FilterOperatorGreaterThanEqual:
		op = ">="
	}

	if checkValueEmpty && value == nil {
		return nil, false
	}

	var exprs []clause.Expression
	if value != nil {
		rawValue, ok := value.(rawValue)
		if ok {
			// um clause.Expr como value provavelmente funcionaria sem um tipo específico
			// mas com um tipo específico fica mais fácil de controlar o que entra aqui
			exprs = statement.BuildCondition(dbFieldName + " " + op + " " + rawValue.value)
		} else {
			exprs = statement.BuildCondition(dbFieldName+" "+op+" ?", value)
		}
	} else {
		exprs = statement.BuildCondition(dbFieldName + " " + op)
	}

	var expr clause.Expression
	if len(exprs) > 1 {
		expr = clause.And(exprs...)
	} else if len(exprs) == 1 {
		expr = exprs[0]
	}
	return expr, expr != nil
}

func getDynamicFilterValue(tx *gorm.DB, dbName string, simple *SimpleFilterData) (clause.Expression, error) {
	if !simple.IsDynamic {
		// função interna, só chega aqui por código controlado pelo dev
		return nil, errors.New("dynamic filter without IsDynamic")
	}

	// por enquanto só existem filtros dinâmicos de data
	// então assume-se que o dbName aponta pra um campo de data
	// o pior que acontece com um campo errado é um erro do banco

	value, _ := simple.Value.(string)

	buildRange := func(startDate, endDate interface{}) (clause.Expression, error) {
		expr, ok := BuildUnderlyingFilterClause(tx.Statement, dbName, startDate, FilterOperatorGreaterThanEqual)
		if !ok {
			return nil, errors.New("expr not ok")
		}

		expr2, ok := BuildUnderlyingFilterClause(tx.Statement, dbName, endDate, FilterOperatorLessThanEqual)
		if !ok {
			return nil, errors.New("expr not ok")
		}

		return clause.And(expr, expr2), nil
	}

	switch value {
	case "now":
		expr, ok := BuildUnderlyingFilterClause(tx.Statement, dbName, rawValue{"CURRENT_TIMESTAMP"}, simple.Operator)
		if !ok {
			return nil, errors.New("expr not ok")
		}
		return expr, nil
	case "today":
		expr, ok := BuildUnderlyingFilterClause(tx.Statement, dbName+"::DATE", rawValue{"CURRENT_DATE"}, simple.Operator)
		if !ok {
			return nil, errors.New("expr not ok")
		}
		return expr, nil
	case "last_week":
		return buildRange(now.BeginningOfDay().AddDate(0, 0, -7), now.EndOfDay())
	case "this_week":
		return buildRange(now.BeginningOfWeek(), now.EndOfWeek())
	case "current_month":
		return buildRange(now.BeginningOfMonth(), now.EndOfMonth())
	case "last_30days":
		return buildRange(now.BeginningOfDay().AddDate(0, 0, -30), now.EndOfDay())
	case "current_quarter":
		return buildRange(now.BeginningOfQuarter(), now.EndOfQuarter())
	case "current_year":
		return buildRange(now.BeginningOfYear(), now.EndOfYear())
	}
	return nil, errors.New("invalid dynamic filter")
}

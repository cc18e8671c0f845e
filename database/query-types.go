package database

// tipos de filtro/paginação que antes vinham do protobuf do frontend
// agora chegam direto como JSON nos endpoints de listagem

type FilterOperator string

const (
	FilterOperatorEqual            FilterOperator = "eq"
	FilterOperatorNotEqual         FilterOperator = "neq"
	FilterOperatorLike             FilterOperator = "like"
	FilterOperatorLikeInsensitive  FilterOperator = "ilike"
	FilterOperatorIsNull           FilterOperator = "isNull"
	FilterOperatorIsNotNull        FilterOperator = "isNotNull"
	FilterOperatorLessThan         FilterOperator = "lt"
	FilterOperatorLessThanEqual    FilterOperator = "lte"
	FilterOperatorGreaterThan      FilterOperator = "gt"
	FilterOperatorGreaterThanEqual FilterOperator = "gte"
)

type SortOrder string

const (
	SortOrderAscending  SortOrder = "asc"
	SortOrderDescending SortOrder = "desc"
)

type SimpleFilterData struct {
	FilterKey string         `json:"filterKey"`
	Value     any            `json:"value"`
	Operator  FilterOperator `json:"operator"`
	// IsDynamic marca valores resolvidos no servidor ("today", "this_week", ...)
	IsDynamic bool `json:"isDynamic,omitempty"`
}

type InFilterData struct {
	FilterKey string `json:"filterKey"`
	Value     []any  `json:"value"`
	IsNot     bool   `json:"isNot,omitempty"`
}

type GroupedFilterData struct {
	Filters []*FilterData `json:"filters"`
}

// FilterData é um "oneof" simples: somente um dos três campos deve vir preenchido
type FilterData struct {
	IsOr    bool               `json:"isOr,omitempty"`
	Simple  *SimpleFilterData  `json:"simple,omitempty"`
	In      *InFilterData      `json:"in,omitempty"`
	Grouped *GroupedFilterData `json:"grouped,omitempty"`
}

type SortOption struct {
	Sort  string    `json:"sort"`
	Order SortOrder `json:"order"`
}

type PaginationData struct {
	Page        uint64        `json:"page"`
	Limit       uint64        `json:"limit"`
	SortOptions []*SortOption `json:"sortOptions,omitempty"`
}

type PaginatedResponseMetadata struct {
	Page  uint64 `json:"page"`
	Limit uint64 `json:"limit"`
	Total uint64 `json:"total"`
}

package teams

import (
	"reflect"
	"testing"
)

func TestDedupeIds(t *testing.T) {
	tests := []struct {
		name string
		in   []int64
		want []int64
	}{
		{
			name: "sem repetição",
			in:   []int64{3, 1, 2},
			want: []int64{3, 1, 2},
		},
		{
			name: "repetições mantêm a primeira ocorrência",
			in:   []int64{5, 1, 5, 2, 1, 5},
			want: []int64{5, 1, 2},
		},
		{
			name: "vazio",
			in:   []int64{},
			want: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedupeIds(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dedupeIds(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateDbRequestDefaults(t *testing.T) {
	t.Run("preenche multiplicador e equilíbrio quando ausentes", func(t *testing.T) {
		req := &GenerateDbRequest{}
		req.applyDefaults()

		if req.SexBalance == nil || req.SexBalance.Enabled {
			t.Fatalf("sexBalance deveria vir desabilitado por padrão: %+v", req.SexBalance)
		}
		if req.SexMultiplier == nil {
			t.Fatal("sexMultiplier não foi preenchido")
		}
		if req.SexMultiplier.M != 1.0 || req.SexMultiplier.F != 0.92 {
			t.Errorf("multiplicador padrão errado: %+v", req.SexMultiplier)
		}
	})

	t.Run("não sobrescreve valores enviados", func(t *testing.T) {
		req := &GenerateDbRequest{
			SexBalance:    &SexBalanceInput{Enabled: true, MaxMaleDiff: 1},
			SexMultiplier: &SexMultiplierInput{M: 1.0, F: 1.0},
		}
		req.applyDefaults()

		if !req.SexBalance.Enabled || req.SexBalance.MaxMaleDiff != 1 {
			t.Errorf("sexBalance foi alterado: %+v", req.SexBalance)
		}
		if req.SexMultiplier.F != 1.0 {
			t.Errorf("sexMultiplier foi alterado: %+v", req.SexMultiplier)
		}
	})
}

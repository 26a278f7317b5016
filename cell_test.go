package tsch

import "testing"

func TestCellOptionHas(t *testing.T) {
	o := OptionTx | OptionShared
	if !o.Has(OptionTx) {
		t.Errorf("Has(OptionTx) = false, want true")
	}
	if !o.Has(OptionShared) {
		t.Errorf("Has(OptionShared) = false, want true")
	}
	if o.Has(OptionRx) {
		t.Errorf("Has(OptionRx) = true, want false")
	}
	if !o.Has(OptionTx | OptionShared) {
		t.Errorf("Has(OptionTx|OptionShared) = false, want true")
	}
}

func TestCellOptionString(t *testing.T) {
	tests := []struct {
		o    CellOption
		want string
	}{
		{0, "none"},
		{OptionTx, "Tx"},
		{OptionRx, "Rx"},
		{OptionTx | OptionRx | OptionShared, "TxRxShared"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}

func TestCellDedicated(t *testing.T) {
	broadcast := Cell{NeighborID: NeighborBroadcast}
	if broadcast.Dedicated() {
		t.Errorf("broadcast cell reported Dedicated")
	}
	dedicated := Cell{NeighborID: 7}
	if !dedicated.Dedicated() {
		t.Errorf("dedicated cell reported not Dedicated")
	}
}

func TestCellTypeString(t *testing.T) {
	tests := []struct {
		typ  CellType
		want string
	}{
		{CellNormal, "normal"},
		{CellAdvertising, "advertising"},
		{CellAdvertisingOnly, "advertising-only"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

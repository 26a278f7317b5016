package tsch

import "testing"

type stubRule struct {
	RuleBase
	attrs PacketAttrs
	match bool
}

func (r *stubRule) Init(n *NodeScheduler, handle uint16) {}

func (r *stubRule) SelectPacket(n *NodeScheduler, pkt Packet) (PacketAttrs, bool) {
	return r.attrs, r.match
}

func TestRegisterRuleAndLookup(t *testing.T) {
	RegisterRule("test_rule_lookup", func() Rule { return &stubRule{RuleBase: RuleBase{RuleName: "test_rule_lookup"}} })

	rule, ok := lookupRule("test_rule_lookup")
	if !ok {
		t.Fatalf("lookupRule reported not found")
	}
	if rule.Name() != "test_rule_lookup" {
		t.Errorf("Name() = %q, want %q", rule.Name(), "test_rule_lookup")
	}
}

func TestRegisterRuleDuplicatePanics(t *testing.T) {
	RegisterRule("test_rule_dup", func() Rule { return &stubRule{} })

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic registering a duplicate rule name")
		}
	}()
	RegisterRule("test_rule_dup", func() Rule { return &stubRule{} })
}

func TestLookupRuleUnknown(t *testing.T) {
	if _, ok := lookupRule("no_such_rule"); ok {
		t.Errorf("lookupRule found a rule that was never registered")
	}
}

func TestRuleBaseName(t *testing.T) {
	b := RuleBase{RuleName: "whatever"}
	if b.Name() != "whatever" {
		t.Errorf("Name() = %q, want %q", b.Name(), "whatever")
	}
}

// Package orchestra provides the six Orchestra scheduling rule
// implementations for use with the tsch scheduling library.
package orchestra

import (
	"github.com/edi-riga/tsch-core"
	"github.com/edi-riga/tsch-core/internal/tschconst"
)

// init registers every built-in rule with the tsch package's rule
// registry, the same way the teacher's driver package registers its
// LinkDriver implementations with rtnetlink.RegisterDriver.
func init() {
	tsch.RegisterRule(tschconst.RuleDefaultCommon, func() tsch.Rule { return newDefaultCommon() })
	tsch.RegisterRule(tschconst.RuleEBPerTimeSource, func() tsch.Rule { return newEBPerTimeSource() })
	tsch.RegisterRule(tschconst.RuleUnicastNS, func() tsch.Rule { return newUnicastNS() })
	tsch.RegisterRule(tschconst.RuleUnicastStoring, func() tsch.Rule { return newUnicastStoring() })
	tsch.RegisterRule(tschconst.RuleLinkBased, func() tsch.Rule { return newLinkBased() })
	tsch.RegisterRule(tschconst.RuleSpecialForRoot, func() tsch.Rule { return newSpecialForRoot() })
}

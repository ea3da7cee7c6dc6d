package heroes

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/herohall/registry/core/runtime"
	"github.com/herohall/registry/core/types"
	"github.com/herohall/registry/modules/heroes/datagateway"
	"github.com/herohall/registry/pkg/logger"
)

// Processor is the registry's instruction processor.
type Processor struct {
	programID  types.Address
	tokenGw    datagateway.TokenTransferrer
	metadataGw datagateway.MetadataUpdater
}

func NewProcessor(programID types.Address, tokenGw datagateway.TokenTransferrer, metadataGw datagateway.MetadataUpdater) *Processor {
	return &Processor{
		programID:  programID,
		tokenGw:    tokenGw,
		metadataGw: metadataGw,
	}
}

// Name implements runtime.Processor.
func (p *Processor) Name() string {
	return "heroes"
}

// ID implements runtime.Processor.
func (p *Processor) ID() types.Address {
	return p.programID
}

// Process implements runtime.Processor. It decodes the instruction tag and
// delegates to the matching handler. Any returned error aborts the whole
// invocation: the runtime restores every named account.
func (p *Processor) Process(ctx context.Context, inv *runtime.Invocation) error {
	instruction, err := UnpackInstruction(inv.Data)
	if err != nil {
		return err
	}

	switch instruction.Op {
	case OpAddRecord:
		logger.DebugContext(ctx, "Instruction: AddRecord")
		return p.processAddRecord(ctx, inv, instruction.AddRecord)
	case OpUpdateRecord:
		logger.DebugContext(ctx, "Instruction: UpdateRecord")
		return p.processUpdateRecord(ctx, inv, instruction.UpdateRecord)
	case OpBuyRecord:
		logger.DebugContext(ctx, "Instruction: BuyRecord")
		return p.processBuyRecord(ctx, inv, instruction.BuyRecord)
	case OpNoop:
		logger.DebugContext(ctx, "Instruction: Noop")
		return nil
	default:
		// UnpackInstruction rejects unknown tags already
		return errors.Wrapf(ErrInvalidInstruction, "tag %d", instruction.Op)
	}
}

var _ runtime.Processor = (*Processor)(nil)

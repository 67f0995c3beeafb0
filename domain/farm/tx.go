package farm

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/x-xyz/yieldfarm/domain"
)

type Op string

const (
	OpCreateAccount   Op = "createAccount"
	OpStake           Op = "stake"
	OpHarvest         Op = "harvest"
	OpUnstake         Op = "unstake"
	OpTransferObjects Op = "transferObjects"
)

type ArgumentKind string

const (
	ArgObject ArgumentKind = "object"
	ArgPure   ArgumentKind = "pure"
	ArgResult ArgumentKind = "result"
	// ArgGasCoin asks the executor to split the deposit from the sender's coins
	ArgGasCoin ArgumentKind = "coin"
)

// Argument refers to an input object, a pure value or the output of an earlier command
type Argument struct {
	Kind  ArgumentKind `json:"kind"`
	Index int          `json:"index,omitempty"`
	Value string       `json:"value,omitempty"`
}

func Object(id domain.Address) Argument {
	return Argument{Kind: ArgObject, Value: id.ToLowerStr()}
}

func Pure(v string) Argument {
	return Argument{Kind: ArgPure, Value: v}
}

func Result(i int) Argument {
	return Argument{Kind: ArgResult, Index: i}
}

func (a Argument) IsResult() bool {
	return a.Kind == ArgResult
}

func (a Argument) String() string {
	switch a.Kind {
	case ArgResult:
		return fmt.Sprintf("Result(%d)", a.Index)
	default:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Value)
	}
}

// Deposit is what a stake call consumes: either an amount sourced from the sender or a coin produced earlier
type Deposit struct {
	Amount uint64
	Coin   *Argument
}

func DepositAmount(amount uint64) Deposit {
	return Deposit{Amount: amount}
}

func DepositCoin(coin Argument) Deposit {
	return Deposit{Coin: &coin}
}

type Command struct {
	Op       Op                `json:"op"`
	Target   string            `json:"target,omitempty"`
	TypeArgs []domain.CoinType `json:"typeArgs,omitempty"`
	Args     []Argument        `json:"args"`
	Amount   uint64            `json:"amount,omitempty"`
}

// Transaction is an ordered list of commands signed and executed atomically
type Transaction struct {
	Sender   domain.Address `json:"sender"`
	Commands []Command      `json:"commands"`
}

func NewTransaction(sender domain.Address) *Transaction {
	return &Transaction{Sender: sender}
}

// Add appends cmd and returns a reference to its output
func (tx *Transaction) Add(cmd Command) Argument {
	tx.Commands = append(tx.Commands, cmd)
	return Result(len(tx.Commands) - 1)
}

func (tx *Transaction) TransferObjects(objs []Argument, recipient domain.Address) {
	args := make([]Argument, 0, len(objs)+1)
	args = append(args, objs...)
	args = append(args, Pure(recipient.ToLowerStr()))
	tx.Commands = append(tx.Commands, Command{Op: OpTransferObjects, Args: args})
}

func (tx *Transaction) Ops() []Op {
	ops := make([]Op, 0, len(tx.Commands))
	for _, c := range tx.Commands {
		ops = append(ops, c.Op)
	}
	return ops
}

// Validate checks that every result reference points backwards and that every
// created account and harvested coin is consumed by a later command
func (tx *Transaction) Validate() error {
	if len(tx.Commands) == 0 {
		return xerrors.Errorf("empty transaction: %w", ErrUnbalancedTransaction)
	}
	consumed := make(map[int]bool)
	for i, c := range tx.Commands {
		for _, a := range c.Args {
			if !a.IsResult() {
				continue
			}
			if a.Index < 0 || a.Index >= i {
				return xerrors.Errorf("command %d refers to %s: %w", i, a, ErrUnbalancedTransaction)
			}
			consumed[a.Index] = true
		}
	}
	for i, c := range tx.Commands {
		switch c.Op {
		case OpCreateAccount, OpHarvest, OpUnstake:
			if !consumed[i] {
				return xerrors.Errorf("output of %s at %d is never used: %w", c.Op, i, ErrUnbalancedTransaction)
			}
		}
	}
	return nil
}

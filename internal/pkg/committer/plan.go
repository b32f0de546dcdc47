// Package committer collects Spanner mutations into commit plans and applies
// them atomically.
//
// Repositories in this codebase return mutations instead of applying them.
// A usecase gathers the mutations belonging to one logical write into a
// CommitPlan and applies the plan in a single transaction. For rate grid
// writes that plan is the unit of atomicity the audit trail depends on: a
// room-rate upsert, its audit record and its outbox event either all commit
// or none do, so a primitive write can never exist without its audit entry.
//
// Typical usecase flow:
//
//	rate, err := rateRepo.Get(ctx, planID, roomTypeID, date)
//	if err := rate.SetRateAmount(amount); err != nil { ... }
//
//	plan := committer.NewPlan()
//	mut, err := rateRepo.UpsertMut(rate)
//	plan.Add(mut)
//	plan.Add(auditMut)
//	plan.Add(outboxMut)
//	return comm.Apply(ctx, plan)
//
// There is no cross-cell transaction: a bulk edit builds one plan per cell.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// ErrVersionConflict is returned by ApplyWithVersionCheck when the stored
// row version no longer matches the version the aggregate was loaded with.
var ErrVersionConflict = fmt.Errorf("version conflict: row changed since it was read")

// CommitPlan collects mutations from multiple repositories so they can be
// applied atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Applier executes commit plans. Usecases depend on this interface so tests
// can substitute an in-memory implementation.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
}

// VersionCheckedApplier additionally supports the compare-and-swap write
// path for room rate cells.
type VersionCheckedApplier interface {
	Applier
	ApplyWithRateVersionCheck(ctx context.Context, ratePlanID, roomTypeID string, date civil.Date, expectedVersion int64, plan *CommitPlan) error
}

// Committer provides transaction execution for CommitPlans against Spanner.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyWithReadWriteTransaction executes arbitrary work within a read-write
// transaction. Useful when reads must happen before mutations are built.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, fn)
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// ApplyWithRateVersionCheck applies the plan only if the room_rates row for
// the given cell still carries expectedVersion. This is the optional
// compare-and-swap hardening for concurrent bulk edits; when unused, writes
// keep plain last-write-wins semantics.
func (c *Committer) ApplyWithRateVersionCheck(
	ctx context.Context,
	ratePlanID, roomTypeID string,
	date civil.Date,
	expectedVersion int64,
	plan *CommitPlan,
) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, "room_rates", spanner.Key{ratePlanID, roomTypeID, date}, []string{"version"})
		if err != nil {
			return fmt.Errorf("failed to read room rate version: %w", err)
		}

		var currentVersion int64
		if err := row.Column(0, &currentVersion); err != nil {
			return fmt.Errorf("failed to parse version: %w", err)
		}

		if currentVersion != expectedVersion {
			return fmt.Errorf("%w: expected %d, got %d", ErrVersionConflict, expectedVersion, currentVersion)
		}

		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("failed to apply commit plan with version check: %w", err)
	}

	return nil
}

// vi: sw=4 ts=4:

/*

	Mnemonic:	coordinator
	Abstract:	C9 -- the coordinator client and leader loop. Registers this
				worker under a renewable lease, campaigns for the single
				leader key, and, while leader, partitions the chateau
				universe across the live worker fleet by stable hash.
	Date:		31 July 2026
	Author:		Aspen team
*/

package managers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/tanneberger/aspen/gizmos"
)

const (
	workers_prefix   = "/aspen_workers/"
	leader_key       = "/aspen_leader"
	assigned_prefix  = "/aspen_assigned_chateaus/"
	lease_ttl_secs   = 10
	renew_interval   = 1 * time.Second
	leader_tick_intv = 5 * time.Second
)

/*
	LeaseLost is returned by Run when the lease keep-alive channel closes
	without our asking it to -- the coordinator library's ephemeral-key
	semantics mean our keys are already gone, so this is fatal: the caller
	is expected to exit so a supervisor restarts with a fresh lease.
*/
type LeaseLost struct {
	WorkerId string
}

func (e *LeaseLost) Error() string {
	return fmt.Sprintf("coordinator: lease lost for worker %s", e.WorkerId)
}

type Coordinator struct {
	cli         *clientv3.Client
	worker_id   string
	socket_addr string
	chateaus    *Chateau_registry
	db          Static_db

	lease_id clientv3.LeaseID
	is_leader bool
}

func Mk_coordinator(cli *clientv3.Client, worker_id, socket_addr string, chateaus *Chateau_registry, db Static_db) *Coordinator {
	return &Coordinator{
		cli:         cli,
		worker_id:   worker_id,
		socket_addr: socket_addr,
		chateaus:    chateaus,
		db:          db,
	}
}

/*
	Run registers the worker, starts lease keep-alive, and drives the
	leader campaign/partition loop until ctx is cancelled or the lease is
	lost. It is the single long-running task C9 contributes to main.
*/
func (c *Coordinator) Run(ctx context.Context) error {
	grant, err := c.cli.Grant(ctx, lease_ttl_secs)
	if err != nil {
		return fmt.Errorf("coordinator: lease grant failed: %w", err)
	}
	c.lease_id = grant.ID

	wr := gizmos.WorkerRegistration{WorkerId: c.worker_id, SocketAddr: c.socket_addr, LeaseId: int64(c.lease_id)}
	if _, err := c.cli.Put(ctx, workers_prefix+c.worker_id, string(encode_worker_registration(wr)), clientv3.WithLease(c.lease_id)); err != nil {
		return fmt.Errorf("coordinator: register failed: %w", err)
	}
	coord_sheep.Baa(1, "coordinator: registered worker %s with lease %x", c.worker_id, c.lease_id)

	keepalive, err := c.cli.KeepAlive(ctx, c.lease_id)
	if err != nil {
		return fmt.Errorf("coordinator: keepalive start failed: %w", err)
	}

	watch_ch := c.cli.Watch(ctx, workers_prefix, clientv3.WithPrefix())

	ticker := time.NewTicker(leader_tick_intv)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-keepalive:
			if !ok {
				return &LeaseLost{WorkerId: c.worker_id}
			}

		case <-watch_ch:
			c.evaluate(ctx)

		case <-ticker.C:
			c.evaluate(ctx)
		}
	}
}

/*
	evaluate runs one campaign-or-renew pass: attempt the leader CAS if not
	already leader, then, if leader, refresh the chateau universe and
	repartition it across the current worker set.
*/
func (c *Coordinator) evaluate(ctx context.Context) {
	if !c.is_leader {
		won, err := c.campaign(ctx)
		if err != nil {
			coord_sheep.Baa(1, "coordinator: campaign error: %s", err)
			return
		}
		c.is_leader = won
		if won {
			coord_sheep.Baa(1, "coordinator: %s became leader", c.worker_id)
		}
	}

	if !c.is_leader {
		return
	}

	if err := c.lead_tick(ctx); err != nil {
		coord_sheep.Baa(1, "coordinator: leader tick failed: %s", err)
	}
}

/*
	campaign attempts to claim /aspen_leader bound to our own lease via a
	compare-and-swap: succeed only if the key does not currently exist.
*/
func (c *Coordinator) campaign(ctx context.Context) (bool, error) {
	txn := c.cli.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(leader_key), "=", 0)).
		Then(clientv3.OpPut(leader_key, c.worker_id, clientv3.WithLease(c.lease_id))).
		Else(clientv3.OpGet(leader_key))

	resp, err := txn.Commit()
	if err != nil {
		return false, err
	}

	return resp.Succeeded, nil
}

/*
	lead_tick performs the leader's periodic work: range-read the live
	worker set, refresh the chateau universe from the static database, and
	write a fresh assignment for every chateau whose stable-hash owner is
	one of the currently live workers.
*/
func (c *Coordinator) lead_tick(ctx context.Context) error {
	worker_ids, err := c.live_workers(ctx)
	if err != nil {
		return fmt.Errorf("listing workers: %w", err)
	}
	if len(worker_ids) == 0 {
		return nil
	}

	if err := c.chateaus.Refresh(ctx, c.db); err != nil {
		return fmt.Errorf("refreshing chateau universe: %w", err)
	}

	for _, chateau := range c.chateaus.All() {
		owner_id := stable_owner(chateau.Id, worker_ids)

		owner_wr, err := c.worker_registration(ctx, owner_id)
		if err != nil {
			coord_sheep.Baa(1, "coordinator: skipping assignment for %s, cannot read owner %s: %s", chateau.Id, owner_id, err)
			continue
		}

		meta := gizmos.Mk_chateau_metadata(chateau.Id, owner_wr)
		_, err = c.cli.Put(ctx, assigned_prefix+chateau.Id, string(encode_chateau_metadata(meta)), clientv3.WithLease(clientv3.LeaseID(owner_wr.LeaseId)))
		if err != nil {
			coord_sheep.Baa(1, "coordinator: assignment write failed for %s: %s", chateau.Id, err)
		}
	}

	return nil
}

/*
	stable_owner picks hash(chateau_id) mod |workers| over sorted worker
	ids, so the owner of any given chateau only changes when the
	membership set itself changes -- not on every tick.
*/
func stable_owner(chateau_id string, sorted_worker_ids []string) string {
	h := xxhash.Sum64String(chateau_id)
	idx := h % uint64(len(sorted_worker_ids))
	return sorted_worker_ids[idx]
}

func (c *Coordinator) live_workers(ctx context.Context) ([]string, error) {
	resp, err := c.cli.Get(ctx, workers_prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		ids = append(ids, string(kv.Key[len(workers_prefix):]))
	}
	sort.Strings(ids)

	return ids, nil
}

func (c *Coordinator) worker_registration(ctx context.Context, worker_id string) (gizmos.WorkerRegistration, error) {
	resp, err := c.cli.Get(ctx, workers_prefix+worker_id)
	if err != nil {
		return gizmos.WorkerRegistration{}, err
	}
	if len(resp.Kvs) == 0 {
		return gizmos.WorkerRegistration{}, fmt.Errorf("worker %s has no registration key", worker_id)
	}

	return decode_worker_registration(resp.Kvs[0].Value)
}

// vi: sw=4 ts=4:

/*

	Mnemonic:	aspen
	Abstract:	Composition root for the Aspen real-time compute tier:
				constructs the shared singletons (C3 realtime store, C4
				enriched store, C5 work queue, the static schedule pool, the
				coordinator client) and starts one goroutine per manager.

				Environment:
					CHANNELS              -- buffer depth of the RPC server's session event channel (default 1024); the number of concurrent inbound connections is not limited
					ALPENROSETHREADCOUNT  -- size of the C6 enrichment pool (default 8)
					ASPEN_RPC_PORT        -- RPC listen port (default 40427)
					ASPEN_SOCKET_ADDR     -- address advertised to the coordinator for this worker
					ASPEN_DB_DSN          -- static schedule database DSN
					ASPEN_ETCD_ENDPOINTS  -- comma separated coordinator endpoints
	Date:		31 July 2026
	Author:		Aspen team
*/

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/google/uuid"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/att/gopkgs/bleater"
	"github.com/att/gopkgs/clike"

	"github.com/tanneberger/aspen/gizmos"
	"github.com/tanneberger/aspen/managers"
)

const version = "aspen v1.0"

var sheep *bleater.Bleater

func usage() {
	fmt.Fprintf(os.Stdout, "%s\n", version)
	fmt.Fprintf(os.Stdout, "usage: aspen [-v]\n")
	fmt.Fprintf(os.Stdout, "configuration is read from the environment; see the file header for variable names\n")
}

func main() {
	var wgroup sync.WaitGroup

	sheep = bleater.Mk_bleater(1, os.Stderr)
	sheep.Set_prefix("aspen-main")
	sheep.Add_child(gizmos.Get_sheep())
	sheep.Add_child(managers.Get_sheep())

	for _, arg := range os.Args[1:] {
		switch arg {
		case "-v":
			sheep.Set_level(2)
			managers.Set_bleat_level(2)
		case "-?", "-h", "--help":
			usage()
			os.Exit(0)
		}
	}

	sheep.Baa(1, "%s started", version)

	channel_depth := env_int("CHANNELS", 1024)
	n_workers := env_int("ALPENROSETHREADCOUNT", 8)
	rpc_port := managers.Env_or_default("ASPEN_RPC_PORT", "40427")
	socket_addr := managers.Env_or_default("ASPEN_SOCKET_ADDR", "127.0.0.1:"+rpc_port)
	dsn := os.Getenv("ASPEN_DB_DSN")
	etcd_endpoints := strings.Split(managers.Env_or_default("ASPEN_ETCD_ENDPOINTS", "127.0.0.1:2379"), ",")

	db, err := managers.Mk_pq_static_db(dsn)
	if err != nil {
		sheep.Baa(0, "ERR: unable to initialise static database pool: %s", err)
		os.Exit(1)
	}

	etcd_cli, err := clientv3.New(clientv3.Config{Endpoints: etcd_endpoints})
	if err != nil {
		sheep.Baa(0, "ERR: unable to reach coordinator at %v: %s", etcd_endpoints, err)
		os.Exit(1)
	}

	worker_id := managers.Env_or_default("ASPEN_WORKER_ID", uuid.NewString())

	rt := managers.Mk_rt_store()
	enriched := managers.Mk_enriched_store()
	dedup := gizmos.Mk_dedup_index()
	queue := managers.Mk_chateau_queue()
	chateaus := managers.Mk_chateau_registry()

	if err := chateaus.Refresh(context.Background(), db); err != nil {
		sheep.Baa(1, "WRN: initial chateau universe refresh failed, starting empty: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coord := managers.Mk_coordinator(etcd_cli, worker_id, socket_addr, chateaus, db)
	pool := managers.Mk_enrich_pool(queue, rt, enriched, db, chateaus, n_workers)
	rpc := managers.Mk_rpc_server(rpc_port, rt, enriched, dedup, queue)

	wgroup.Add(1)
	go func() {
		defer wgroup.Done()
		rpc.Run(ctx, channel_depth)
	}()

	wgroup.Add(1)
	go func() {
		defer wgroup.Done()
		if err := pool.Run(ctx); err != nil {
			sheep.Baa(0, "ERR: enrichment pool exited: %s", err)
		}
	}()

	wgroup.Add(1)
	go func() {
		defer wgroup.Done()
		if err := coord.Run(ctx); err != nil {
			sheep.Baa(0, "ERR: coordinator exited: %s", err)
			cancel()
			os.Exit(1)
		}
	}()

	sig_ch := make(chan os.Signal, 1)
	signal.Notify(sig_ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig_ch
		sheep.Baa(1, "signal received, shutting down")
		cancel()
	}()

	wgroup.Wait()
	os.Exit(0)
}

func env_int(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	if n := clike.Atoi(v); n != 0 {
		return n
	}
	return def
}

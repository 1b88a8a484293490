package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
)

var errNoRoute = errors.New("no default route")

// Checker reports interface state, default route, name resolution and
// listening sockets. ProcPath and Resolver exist so tests can point at
// fixtures, callers leave them zero.
type Checker struct {
	DNSHost  string
	ProcPath string
	Resolver *net.Resolver
}

func (c *Checker) Name() string { return "Network" }

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	var results []check.Result

	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		results = append(results, check.Unavailable("net.interfaces", err.Error()))
	} else {
		for _, iface := range ifaces {
			if r, ok := interfaceResult(iface); ok {
				results = append(results, r)
			}
		}
		if len(results) == 0 {
			results = append(results, check.Unavailable("net.interfaces", "no non-loopback interfaces"))
		}
	}

	results = append(results, c.gatewayResult())
	results = append(results, c.dnsResult(ctx))
	results = append(results, listeningResult(ctx))
	return results, nil
}

func interfaceResult(iface psnet.InterfaceStat) (check.Result, bool) {
	if iface.Name == "lo" || hasFlag(iface.Flags, "loopback") {
		return check.Result{}, false
	}
	metric := "net.iface." + iface.Name
	if !hasFlag(iface.Flags, "up") {
		return check.New(metric, check.StatusWarning, "down", iface.Name+" is down"), true
	}
	msg := iface.Name + " up"
	if addrs := addrList(iface); len(addrs) > 0 {
		msg += " (" + strings.Join(addrs, ", ") + ")"
	}
	return check.New(metric, check.StatusOK, "up", msg), true
}

func addrList(iface psnet.InterfaceStat) []string {
	addrs := make([]string, 0, len(iface.Addrs))
	for _, a := range iface.Addrs {
		if a.Addr != "" {
			addrs = append(addrs, a.Addr)
		}
	}
	return addrs
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

func (c *Checker) gatewayResult() check.Result {
	proc := c.ProcPath
	if proc == "" {
		proc = "/proc"
	}
	gw, iface, err := defaultGateway(proc + "/net/route")
	if errors.Is(err, errNoRoute) {
		return check.New("net.gateway", check.StatusWarning, "none", "no default route")
	}
	if err != nil {
		return check.Unavailable("net.gateway", err.Error())
	}
	return check.New("net.gateway", check.StatusOK, gw,
		fmt.Sprintf("default route via %s on %s", gw, iface))
}

// defaultGateway scans the kernel routing table for the all-zero
// destination and returns the gateway address and interface.
func defaultGateway(path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || fields[1] != "00000000" {
			continue
		}
		gw, err := parseHexIP(fields[2])
		if err != nil {
			return "", "", err
		}
		return gw, fields[0], nil
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}
	return "", "", errNoRoute
}

// parseHexIP decodes the little-endian hex form the route table uses,
// so "0100000A" comes back as "10.0.0.1".
func parseHexIP(s string) (string, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return "", fmt.Errorf("parse route address %q: %w", s, err)
	}
	return fmt.Sprintf("%d.%d.%d.%d", byte(v), byte(v>>8), byte(v>>16), byte(v>>24)), nil
}

func (c *Checker) dnsResult(ctx context.Context) check.Result {
	host := c.DNSHost
	if host == "" {
		host = "google.com"
	}
	resolver := c.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	addrs, err := resolver.LookupHost(ctx, host)
	if err != nil || len(addrs) == 0 {
		reason := "no addresses returned"
		if err != nil {
			reason = err.Error()
		}
		return check.New("net.dns", check.StatusWarning, "failed",
			fmt.Sprintf("cannot resolve %s: %s", host, reason))
	}
	return check.New("net.dns", check.StatusOK, addrs[0],
		fmt.Sprintf("%s resolves to %s", host, addrs[0]))
}

func listeningResult(ctx context.Context) check.Result {
	conns, err := psnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return check.Unavailable("net.listening", err.Error())
	}
	ports := make(map[uint32]bool)
	for _, conn := range conns {
		if conn.Status == "LISTEN" {
			ports[conn.Laddr.Port] = true
		}
	}
	return check.New("net.listening", check.StatusInfo, strconv.Itoa(len(ports)),
		fmt.Sprintf("%d tcp ports listening", len(ports)))
}

package resolver

import (
	"context"
	"errors"
	"net"
	"testing"

	"IPService/internal/netinfo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	outputs map[string]string
	err     error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	key := name
	for _, a := range args {
		key += " " + a
	}
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	out, ok := f.outputs[key]
	if !ok {
		return nil, errors.New("executable file not found")
	}
	return []byte(out), nil
}

const ipAddrSample = `1: lo: <LOOPBACK,UP,LOWER_UP> mtu 65536 qdisc noqueue state UNKNOWN group default qlen 1000
    link/loopback 00:00:00:00:00:00 brd 00:00:00:00:00:00
    inet 127.0.0.1/8 scope host lo
       valid_lft forever preferred_lft forever
    inet6 ::1/128 scope host
       valid_lft forever preferred_lft forever
42: eth0@if43: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc noqueue state UP group default
    link/ether 02:42:ac:11:00:02 brd ff:ff:ff:ff:ff:ff link-netnsid 0
    inet 172.17.0.2/16 brd 172.17.255.255 scope global eth0
       valid_lft forever preferred_lft forever
    inet6 fe80::42:acff:fe11:2/64 scope link
`

func TestHostnameCommand(t *testing.T) {
	t.Run("SplitsOutput", func(t *testing.T) {
		runner := &fakeRunner{outputs: map[string]string{"hostname -I": "172.17.0.2 10.0.0.5 fd00::2 \n"}}

		res := NewHostnameCommand(runner).Discover(context.Background(), Config{})

		require.True(t, res.OK())
		assert.Equal(t, []string{"172.17.0.2", "10.0.0.5", "fd00::2"}, res.Addresses)
		assert.Equal(t, "172.17.0.2 10.0.0.5 fd00::2", res.Raw)
		assert.Equal(t, []string{"hostname -I"}, runner.calls)
	})

	t.Run("MissingTool", func(t *testing.T) {
		res := NewHostnameCommand(&fakeRunner{}).Discover(context.Background(), Config{})

		assert.False(t, res.OK())
		assert.Empty(t, res.Addresses)
	})
}

func TestIPAddrCommand(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"ip addr show": ipAddrSample}}

	res := NewIPAddrCommand(runner).Discover(context.Background(), Config{})

	require.True(t, res.OK())
	assert.Equal(t, []string{"127.0.0.1", "172.17.0.2"}, res.Addresses)
}

func TestParseInet_IgnoresInet6(t *testing.T) {
	assert.Empty(t, ParseInet("inet6 fe80::1/64 scope link"))
	assert.Equal(t, []string{"10.1.2.3"}, ParseInet("inet\t10.1.2.3/24"))
}

type fakeSource struct {
	ifaces []netinfo.Interface
	err    error
}

func (f fakeSource) Interfaces(context.Context) ([]netinfo.Interface, error) {
	return f.ifaces, f.err
}

func TestInterfaceAPI(t *testing.T) {
	src := fakeSource{ifaces: []netinfo.Interface{
		{Name: "lo", Addrs: []string{"127.0.0.1/8", "::1/128"}},
		{Name: "eth0", Addrs: []string{"10.0.0.5/24", "fe80::1/64", "garbage"}},
	}}

	res := NewInterfaceAPI(src).Discover(context.Background(), Config{ShowLoopback: true})
	require.True(t, res.OK())
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.5"}, res.Addresses)

	res = NewInterfaceAPI(fakeSource{err: errors.New("denied")}).Discover(context.Background(), Config{})
	assert.False(t, res.OK())
}

func TestHostnameLookup(t *testing.T) {
	s := &HostnameLookup{
		hostname: func() (string, error) { return "box", nil },
		lookup: func(_ context.Context, host string) ([]string, error) {
			if host != "box" {
				return nil, errors.New("unknown host")
			}
			return []string{"10.0.0.9", "fe80::9", "127.0.1.1"}, nil
		},
	}

	res := s.Discover(context.Background(), Config{})
	assert.Equal(t, []string{"10.0.0.9", "127.0.1.1"}, res.Addresses)

	res = s.Discover(context.Background(), Config{ShowLoopback: true})
	assert.Equal(t, []string{"10.0.0.9", "fe80::9", "127.0.1.1"}, res.Addresses)

	s.hostname = func() (string, error) { return "", errors.New("no hostname") }
	assert.False(t, s.Discover(context.Background(), Config{}).OK())
}

// boundConn reports a fixed local address and records Close
type boundConn struct {
	net.Conn
	local  net.Addr
	closed bool
}

func (c *boundConn) LocalAddr() net.Addr { return c.local }
func (c *boundConn) Close() error        { c.closed = true; return nil }

func TestRouteProbe(t *testing.T) {
	t.Run("ReadsLocalAddress", func(t *testing.T) {
		conn := &boundConn{local: &net.UDPAddr{IP: net.ParseIP("192.168.1.10"), Port: 50000}}
		var dialed string
		s := NewRouteProbe("")
		s.dial = func(_ context.Context, network, address string) (net.Conn, error) {
			dialed = network + " " + address
			return conn, nil
		}

		res := s.Discover(context.Background(), Config{})

		require.True(t, res.OK())
		assert.Equal(t, []string{"192.168.1.10"}, res.Addresses)
		assert.Equal(t, "udp4 "+DefaultProbeTarget, dialed)
		assert.True(t, conn.closed)
	})

	t.Run("ReleasesSocketOnFailure", func(t *testing.T) {
		conn := &boundConn{local: &net.UDPAddr{IP: net.IPv4zero}}
		s := NewRouteProbe("192.0.2.1:9")
		s.dial = func(context.Context, string, string) (net.Conn, error) { return conn, nil }

		res := s.Discover(context.Background(), Config{})

		assert.False(t, res.OK())
		assert.True(t, conn.closed)
	})

	t.Run("DialError", func(t *testing.T) {
		s := NewRouteProbe("")
		s.dial = func(context.Context, string, string) (net.Conn, error) {
			return nil, errors.New("network is unreachable")
		}

		assert.False(t, s.Discover(context.Background(), Config{}).OK())
	})
}

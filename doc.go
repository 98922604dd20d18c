// Package pollwrap provides a minimal readiness-event dispatch loop, over
// epoll (Linux) or kqueue (Darwin).
//
// # Tokens
//
// Each registered source is identified by a [Token]. Tokens are issued from
// zero, in registration order, and a [Dispatcher] never issues the same token
// twice, whether the source was registered before the loop started
// ([Dispatcher.Register]) or from inside a callback ([Scope.Register]).
// Both satisfy [Handle].
//
// # Usage
//
//	d, err := pollwrap.New()
//	if err != nil {
//	    return err
//	}
//	listenerToken, err := d.Register(listener)
//	if err != nil {
//	    return err
//	}
//	conns := make(map[pollwrap.Token]net.Conn)
//	return d.Run(func(event pollwrap.Event, scope *pollwrap.Scope) error {
//	    if event.Token() == listenerToken {
//	        conn, err := listener.Accept()
//	        if err != nil {
//	            return err
//	        }
//	        token, err := scope.Register(conn.(*net.TCPConn))
//	        if err != nil {
//	            return err
//	        }
//	        conns[token] = conn
//	        return nil
//	    }
//	    // handle conns[event.Token()]
//	    return nil
//	})
//
// # Lifecycle
//
// [Dispatcher.Run] blocks, with no timeout, and only returns when a callback
// fails (or waiting fails). There is no other way to stop it: to shut down,
// arrange for a source to become ready, and return an error from its
// callback. Sources are never deregistered or closed by this package.
//
// Registration is edge-triggered, for both read and write readiness.
package pollwrap

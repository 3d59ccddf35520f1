// Package client provides the `mq` command-line client.
//
// The CLI talks to the broker's HTTP API to manage queues and move messages
// from a terminal. It is primarily intended for developers and operators.
//
// # Address and credentials
//
// The HTTP base URL comes from the MQ_HTTP environment variable (default
// http://127.0.0.1:7500). Queue commands send the bearer token from
// MQ_TOKEN when set, otherwise the token cached by `mq login`.
//
// Usage
//
//	mq login --username admin --password admin_password
//
//	mq queue create --name orders --type transaction --max-messages 500
//
//	mq queue push \
//	    --queue orders --type transaction \
//	    --data '{"transaction_id":"t1","customer_id":"c1","amount":9.5,"vendor_id":"v1"}'
//
//	mq queue pull --queue orders
//	mq queue list
//	mq queue info --name orders
//	mq queue delete --name orders
//
// Notes
//
//   - push validates that --data is JSON before sending; the server
//     validates required fields for the declared type.
//   - pull prints "queue is empty" when the server answers 204; an empty
//     queue is a normal outcome, not an error.
package client

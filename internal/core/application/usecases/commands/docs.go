// Package commands holds the write-side use cases: submitting and advancing
// orders, hiring workers and starting shifts. Every command is built through
// its constructor and validated by its handler; handlers that move orders
// journal the result through Journal.
package commands

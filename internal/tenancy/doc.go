// Package tenancy implements the tenant isolation enforcement layer,
// providing the scoping predicates, the skip registry and a controlled,
// audited bypass for verified system operations.
//
// Core concepts:
//
//   - Scope: the tenant identity of a record family, either a firm or a
//     solo lawyer. Exactly one of the two identifiers is populated.
//
//   - Predicates: pure classification of filters, aggregation pipelines and
//     bulk batches as tenant-scoped or not. Predicates never return errors;
//     the storage guard converts a negative result into an IsolationError.
//
//   - Registry: the immutable set of entity types exempt from enforcement
//     (identity, session and global configuration records). Built once at
//     startup, injected into the guard.
//
//   - Principal: a single authorization identity per request (System/User/Test).
//     Set via NewSystemContext, NewUserContext, NewTestContext or WithPrincipal.
//
//   - Bypass: controlled enforcement bypass via RunWithBypass (closure,
//     preferred) or WithBypass (explicit context). All bypass operations are
//     audited.
//
// Usage rules:
//
//  1. Prefer RunWithBypass closures to limit the bypass scope.
//  2. When using WithBypass, assign to bypassCtx, never ctx.
//  3. All bypass reasons must be stable strings for audit aggregation.
//  4. Background tasks must declare System principal via NewSystemContext.
package tenancy

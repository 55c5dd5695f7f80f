/*
Package store manages the persisted task document for taskvault.

	            +-------------+
	            |    Store    |
	            | (Document)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   fsio    |           |  audit  |
	| (Storage) |           |  (Log)  |
	+-----------+           +---------+

🎯 Purpose:
- Owns the on-disk collection document and its exclusive lock
- Verifies the document checksum on every load
- Persists every mutation atomically with a fresh checksum
- Emits one audit entry per accepted mutating operation

🔄 Flow:
1. Operation acquires the store lock
2. Document is loaded and integrity-checked
3. In-memory collection is mutated (possibly through task.Apply)
4. Document is written atomically with a recomputed checksum
5. Lock is released, then the audit entry is appended

⚡ Key Responsibilities:
- Checksum computation over a canonical serialization
- Duplicate-id rejection on create
- Optimistic per-record versioning on update
- Not-found surfacing for get/update, boolean result for delete

🤝 Interfaces:
- fsio.FileStore: atomic document writes
- audit.Log: append-only operation trail

📝 Design Philosophy:
Every operation, reads included, runs under one coarse lock. That
serializes all access to the document, which is deliberate: lock hold
time is bounded by one read, an in-memory mutation, and one write, and
in exchange no operation can observe a torn document or lose an update.
Audit entries are appended after the lock is released, so under normal
operation they lag or coincide with the document state they describe.
*/
package store

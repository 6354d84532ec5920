/**
 * Copyright 2024 Confluent Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package avro holds the error taxonomy shared by the Avro schema model,
// the generic data model and the wire codecs.
//
// The library is organized as follows:
//
//   - schema: the Avro schema model, the JSON schema parser and the
//     canonical JSON emitter
//   - generic: a schema-shaped dynamic value (Datum) together with the
//     Reader and Writer that move datums through a codec
//   - encoding: the Encoder and Decoder contracts
//   - encoding/avrobinary: the Avro binary wire format
//   - encoding/avrojson: the Avro JSON wire format
//   - encoding/stream: buffered adapters between codecs and raw streams
//
// Schemas are immutable once parsing returns and may be shared across
// goroutines for reading. Datums, encoders and decoders are owned by a
// single caller for their lifetime.
package avro

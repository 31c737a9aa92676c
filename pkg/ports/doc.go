/*
Package ports defines the driven interfaces of the triage engine.

  - SessionStore: persistence for in-progress symptom-checker sessions.
  - Recognizer: the generic named-entity recognizer resource.
  - Completer: the external completion service (interface only; the
    core never calls it).
*/
package ports

// Package linkgrp reads and writes TEI link-group alignment files.
//
// A file holds one <TEI> root. Every aligned book contributes a <teiHeader>
// naming the book followed by a <linkGrp> whose <link> children record the
// aligned article pairs with their method and scores:
//
//	<TEI>
//	  <teiHeader>1900</teiHeader>
//	  <linkGrp lang="de;fr" targType="yearbook" xtargets="1900_de.xml;1900_fr.xml">
//	    <link targType="article" xtargets="a.xml;b.xml" label="parallel" method="BLEU" score="0.52"/>
//	  </linkGrp>
//	</TEI>
//
// Appending keeps every element already present in the file, including ones
// this package does not model.
package linkgrp
